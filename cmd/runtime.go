package cmd

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/chain"
	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/log"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/nft"
	"github.com/husky-nft/nftgate/offchain"
	"github.com/husky-nft/nftgate/orm"
	"github.com/husky-nft/nftgate/sentry_integration"
)

// runtime holds what every long-running command sets up first.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
	flush  func()
}

func setup() (*runtime, error) {
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}

	logger := log.NewLogger(cfg)
	flush, err := sentry_integration.Init(cfg.GetSentryConfig())
	if err != nil {
		logger.Warn("sentry disabled", slog.Any("error", err))
	}
	metrics.Init(cfg.GetChainConfig().CollectionAddress)

	return &runtime{cfg: cfg, logger: logger, flush: flush}, nil
}

func newService(cfg *config.Config, logger *slog.Logger) *nft.Service {
	cc := cfg.GetChainConfig()
	reader := offchain.NewWebReader(fiber.AcquireClient(), cc.IpfsGateway, cc.ArweaveGateway, cfg.GetFetchTimeout())
	fetcher := offchain.NewFetcher(reader, cfg.GetCacheSize(), cfg.GetCacheTTL())
	return nft.NewService(chain.New(cfg, logger), fetcher, nft.SettingsFromConfig(cfg), logger)
}

// openDB connects to the snapshot database, applies DB_AUTO_MIGRATE and
// starts the pool stats updater.
func openDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*orm.Database, error) {
	db, err := orm.OpenDB(cfg.GetDBConfig(), logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	metrics.StartDBStatsUpdater(db, logger)
	return db, nil
}
