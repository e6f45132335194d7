package nft

import (
	"context"
	"log/slog"
	"strings"

	"github.com/husky-nft/nftgate/chain"
	"github.com/husky-nft/nftgate/types"
)

// CheckOwnership returns the mint of the first token held by wallet whose
// metadata carries the verified target collection. Accounts are checked in
// RPC order. Zero-balance, metadata-less and undecodable accounts are skipped.
func (s *Service) CheckOwnership(ctx context.Context, wallet string) (string, bool, error) {
	owner, err := parseKey("wallet", strings.TrimSpace(wallet))
	if err != nil {
		return "", false, err
	}

	accounts, err := s.chain.TokenAccountsByOwner(ctx, owner)
	if err != nil {
		return "", false, err
	}

	for _, raw := range accounts {
		account, err := chain.DecodeTokenAccount(raw.Address, raw.Data)
		if err != nil {
			s.logger.Debug("skipping undecodable token account",
				slog.String("account", raw.Address.String()),
				slog.Any("error", err))
			continue
		}
		if account.Amount == 0 {
			continue
		}

		md, err := s.loadMetadata(ctx, account.Mint)
		switch {
		case types.Is(err, types.ErrTypeNotFound):
			continue
		case types.Is(err, types.ErrTypeDecode):
			s.logger.Debug("skipping token with malformed metadata",
				slog.String("mint", account.Mint.String()),
				slog.Any("error", err))
			continue
		case err != nil:
			return "", false, err
		}

		if md.InCollection(s.settings.Collection) {
			return account.Mint.String(), true, nil
		}
	}

	return "", false, nil
}

// Ownership wraps CheckOwnership into its API shape.
func (s *Service) Ownership(ctx context.Context, wallet string) (*types.OwnershipResult, error) {
	mint, found, err := s.CheckOwnership(ctx, wallet)
	if err != nil {
		return nil, err
	}

	res := &types.OwnershipResult{Wallet: strings.TrimSpace(wallet), Owned: found}
	if found {
		res.Mint = &mint
	}
	return res, nil
}
