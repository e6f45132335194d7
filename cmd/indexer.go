package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/husky-nft/nftgate/indexer"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

func indexerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexer",
		Short: "Snapshot the collection into the database",
		Long: `
Periodically list the collection and store it in the collection_entry table.

DB_DSN is required. SNAPSHOT_INTERVAL sets the period between runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup()
			if err != nil {
				return err
			}
			defer rt.flush()

			if !rt.cfg.DBEnabled() {
				return types.NewConfigError("indexer requires DB_DSN", nil)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := openDB(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			metricsServer := metrics.NewServer(rt.cfg, rt.logger)
			go func() {
				if err := metricsServer.Start(); err != nil {
					rt.logger.Error("metrics server failed", slog.Any("error", err))
				}
			}()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = metricsServer.Shutdown(shutdownCtx)
			}()

			idx := indexer.New(rt.cfg, rt.logger, db, newService(rt.cfg, rt.logger))
			return idx.Run(ctx)
		},
	}

	return cmd
}
