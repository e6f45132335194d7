package nft

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/husky-nft/nftgate/chain"
	"github.com/husky-nft/nftgate/types"
)

// Item is a listed collection entry together with the fields the snapshot stores.
type Item struct {
	Entry    types.CollectionEntry
	Uri      string
	Creators []string
	// Position is the index of the item's token account in the enumeration.
	Position int
}

// Listing is the result of one collection enumeration. Mints holds every
// enumerated mint, including those whose item could not be resolved, and
// Failed counts the items omitted for transient reasons.
type Listing struct {
	Items  []Item
	Mints  []string
	Failed int
}

// Complete reports whether no item was lost to a transient failure.
func (l *Listing) Complete() bool {
	return l.Failed == 0
}

// StaggerDelay is the start offset of the i-th listing item.
func StaggerDelay(i int, step time.Duration) time.Duration {
	return time.Duration(i) * step
}

// ListCollection enumerates the token accounts held by the collection creator
// and resolves each into a gallery entry. Items that fail are omitted and the
// rest keep the RPC order.
func (s *Service) ListCollection(ctx context.Context) ([]types.CollectionEntry, error) {
	listing, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return listing.Entries(), nil
}

// Entries returns the gallery entries of the resolved items.
func (l *Listing) Entries() []types.CollectionEntry {
	entries := make([]types.CollectionEntry, 0, len(l.Items))
	for _, item := range l.Items {
		entries = append(entries, item.Entry)
	}
	return entries
}

// ListItems is ListCollection with the extra snapshot fields.
func (s *Service) ListItems(ctx context.Context) (*Listing, error) {
	raw, err := s.chain.TokenAccountsHeldBy(ctx, s.settings.Creator)
	if err != nil {
		return nil, err
	}

	accounts := make([]chain.TokenAccount, 0, len(raw))
	mints := make([]string, 0, len(raw))
	for _, r := range raw {
		account, err := chain.DecodeTokenAccount(r.Address, r.Data)
		if err != nil {
			s.logger.Warn("omitting undecodable token account",
				slog.String("account", r.Address.String()),
				slog.Any("error", err))
			continue
		}
		accounts = append(accounts, account)
		mints = append(mints, account.Mint.String())
	}

	results := make([]*Item, len(accounts))
	var failed atomic.Int32
	begin := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.MaxConcurrent)

	for i, account := range accounts {
		i, account := i, account
		g.Go(func() error {
			// offsets are measured from begin so the concurrency cap does not stretch the schedule
			if err := waitUntil(gCtx, begin.Add(StaggerDelay(i, s.settings.ItemDelay))); err != nil {
				return err
			}

			item, err := s.resolveItem(gCtx, account)
			if err != nil {
				if isContextErr(err) && gCtx.Err() != nil {
					return gCtx.Err()
				}
				if isTransient(err) {
					failed.Add(1)
				}
				s.logger.Warn("omitting collection item",
					slog.String("mint", account.Mint.String()),
					slog.Any("error", err))
				return nil
			}
			item.Position = i
			results[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	listing := &Listing{
		Items:  make([]Item, 0, len(results)),
		Mints:  mints,
		Failed: int(failed.Load()),
	}
	for _, item := range results {
		if item != nil {
			listing.Items = append(listing.Items, *item)
		}
	}
	return listing, nil
}

// isTransient reports failures that may succeed on a later attempt.
func isTransient(err error) bool {
	switch types.TypeOf(err) {
	case types.ErrTypeNetwork, types.ErrTypeRateLimit, types.ErrTypeTimeout:
		return true
	}
	return isContextErr(err)
}

func (s *Service) resolveItem(ctx context.Context, account chain.TokenAccount) (*Item, error) {
	md, err := s.loadMetadata(ctx, account.Mint)
	if err != nil {
		return nil, err
	}

	doc, err := s.fetcher.Fetch(ctx, md.Data.Uri)
	if err != nil {
		return nil, err
	}

	return &Item{
		Entry: types.CollectionEntry{
			Mint:        account.Mint.String(),
			Name:        md.Data.Name,
			Image:       doc.Image,
			Description: doc.Description,
		},
		Uri:      md.Data.Uri,
		Creators: md.VerifiedCreators(),
	}, nil
}

// Collection serves the gallery: the stored snapshot when one is configured
// and non-empty, otherwise a live listing cached for the configured TTL.
func (s *Service) Collection(ctx context.Context) ([]types.CollectionEntry, error) {
	if s.snapshot != nil {
		entries, err := s.snapshot.LoadEntries(ctx)
		switch {
		case err != nil:
			s.logger.Warn("failed to load collection snapshot, listing live", slog.Any("error", err))
		case len(entries) > 0:
			return entries, nil
		}
	}

	if entries, ok := s.collection.Get(collectionCacheKey); ok {
		return entries, nil
	}

	listing, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	entries := listing.Entries()
	if listing.Complete() {
		s.collection.Set(collectionCacheKey, entries)
	} else {
		s.logger.Warn("collection listing incomplete, not caching", slog.Int("failed", listing.Failed))
	}
	return entries, nil
}

func waitUntil(ctx context.Context, at time.Time) error {
	d := time.Until(at)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
