package indexer

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/nft"
	"github.com/husky-nft/nftgate/orm"
	"github.com/husky-nft/nftgate/sentry_integration"
	"github.com/husky-nft/nftgate/types"
)

const component = "indexer"

// Lister produces the items of one snapshot run.
type Lister interface {
	ListItems(ctx context.Context) (*nft.Listing, error)
}

// Indexer periodically lists the collection and stores the result.
type Indexer struct {
	logger     *slog.Logger
	lister     Lister
	store      *Store
	interval   time.Duration
	retryDelay time.Duration
}

func New(cfg *config.Config, logger *slog.Logger, db *orm.Database, lister Lister) *Indexer {
	collection := cfg.GetChainConfig().CollectionAddress
	return &Indexer{
		logger:     logger.With(slog.String("component", component), slog.String("collection", collection)),
		lister:     lister,
		store:      NewStore(db, collection),
		interval:   cfg.GetSnapshotInterval(),
		retryDelay: types.SnapshotRetryDelay,
	}
}

func (i *Indexer) Store() *Store {
	return i.store
}

// Run snapshots immediately and then every interval until ctx is done. A
// failed run is retried after the retry delay instead of a full interval.
func (i *Indexer) Run(ctx context.Context) error {
	metrics.SetComponentHealth(component, true)
	for {
		next := i.interval
		if _, err := i.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			next = i.retryDelay
		}

		timer := time.NewTimer(next)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// RunOnce performs a single snapshot and returns the number of stored entries.
func (i *Indexer) RunOnce(ctx context.Context) (n int, err error) {
	transaction, ctx := sentry_integration.StartSentryTransaction(ctx, "indexer.snapshot", "Snapshot collection")
	defer transaction.Finish()

	start := time.Now()
	defer func() {
		metrics.TrackSnapshot(err, n, time.Since(start))
		metrics.SetComponentHealth(component, err == nil)
	}()
	defer metrics.RecoverAsError(component, &err)

	listing, err := i.lister.ListItems(ctx)
	if err != nil {
		i.fail(ctx, "list", err)
		return 0, err
	}
	if !listing.Complete() {
		metrics.TrackError(component, "incomplete_listing")
		i.logger.Warn("collection listing incomplete, keeping stored rows for failed items",
			slog.Int("failed", listing.Failed),
			slog.Int("enumerated", len(listing.Mints)))
	}

	span, spanCtx := sentry_integration.StartSentrySpan(ctx, "db.save", "Save collection snapshot")
	err = i.store.Save(spanCtx, listing)
	span.Finish()
	if err != nil {
		i.fail(ctx, "save", err)
		return 0, err
	}

	n = len(listing.Items)
	i.logger.Info("collection snapshot stored",
		slog.Int("entries", n),
		slog.Duration("elapsed", time.Since(start)))
	return n, nil
}

func (i *Indexer) fail(ctx context.Context, stage string, err error) {
	if ctx.Err() != nil {
		return
	}
	metrics.TrackError(component, stage+"_error")
	i.logger.Error("collection snapshot failed", slog.String("stage", stage), slog.Any("error", err))
	sentry_integration.CaptureCurrentHubException(err, sentry.LevelError)
}
