package nft

import (
	"context"
	"log/slog"
	"strings"

	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

// Dashboard assembles the page shown to a connected wallet. It never fails:
// ownership or detail errors read as "no NFT" and a collection error is
// reported in CollectionError.
func (s *Service) Dashboard(ctx context.Context, wallet string) types.DashboardView {
	wallet = strings.TrimSpace(wallet)
	view := types.DashboardView{
		Wallet:     wallet,
		Collection: []types.CollectionEntry{},
	}

	mint, found, err := s.CheckOwnership(ctx, wallet)
	switch {
	case err != nil:
		s.logger.Warn("ownership check failed", slog.String("wallet", wallet), slog.Any("error", err))
	case found:
		record, err := s.FetchNftDetails(ctx, mint)
		if err != nil {
			s.logger.Warn("failed to load owned nft", slog.String("mint", mint), slog.Any("error", err))
			metrics.TrackDegraded("nft")
			break
		}
		view.Owned = true
		view.Nft = record
	}

	entries, err := s.Collection(ctx)
	if err != nil {
		s.logger.Error("failed to load collection", slog.Any("error", err))
		view.CollectionError = types.CollectionErrorPrefix + err.Error()
		return view
	}
	view.Collection = entries
	return view
}
