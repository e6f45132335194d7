package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/husky-nft/nftgate/api"
	"github.com/husky-nft/nftgate/indexer"
	"github.com/husky-nft/nftgate/metrics"
)

func apiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Run the nftgate API server",
		Long: `
Run the nftgate API server.

This command serves ownership checks, NFT details, the collection gallery and the
dashboard view over HTTP. When DB_DSN is set the collection endpoint serves the
snapshot written by the indexer command.

You can configure chain, cache, database, logging, and server options via environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.flush()

			svc := newService(rt.cfg, rt.logger)
			if rt.cfg.DBEnabled() {
				db, err := openDB(cmd.Context(), rt.cfg, rt.logger)
				if err != nil {
					return err
				}
				defer db.Close() //nolint:errcheck
				svc.WithSnapshot(indexer.NewStore(db, svc.CollectionAddress()))
			}

			metricsServer := metrics.NewServer(rt.cfg, rt.logger)
			go func() {
				if err := metricsServer.Start(); err != nil {
					rt.logger.Error("metrics server failed", slog.Any("error", err))
				}
			}()

			server := api.New(rt.cfg, rt.logger, svc)

			// graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigChan
				rt.logger.Info("shutting down API server...")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := metricsServer.Shutdown(ctx); err != nil {
					rt.logger.Error("metrics shutdown failed", slog.Any("error", err))
				}
				if err := server.Shutdown(); err != nil {
					rt.logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
				}
			}()

			return server.Start()
		},
	}

	return cmd
}
