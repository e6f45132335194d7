package nft

import (
	"context"
	"errors"
	"strings"

	"github.com/husky-nft/nftgate/offchain"
	"github.com/husky-nft/nftgate/types"
)

// FetchNftDetails loads the display record of mint: name and image come from
// the off-chain document, uri from the on-chain metadata.
func (s *Service) FetchNftDetails(ctx context.Context, mint string) (*types.NftRecord, error) {
	mint = strings.TrimSpace(mint)
	mintKey, err := parseKey("mint", mint)
	if err != nil {
		return nil, err
	}

	md, err := s.loadMetadata(ctx, mintKey)
	if err != nil {
		return nil, err
	}

	doc, err := s.fetcher.Fetch(ctx, md.Data.Uri)
	if err != nil {
		if isBadDocument(err) {
			return nil, types.NewDecodeError("metadata document "+md.Data.Uri, err)
		}
		return nil, err
	}

	traits := doc.Attributes
	if traits == nil {
		traits = []types.Trait{}
	}

	return &types.NftRecord{
		Name:   doc.Name,
		Image:  doc.Image,
		Uri:    md.Data.Uri,
		Mint:   mint,
		Traits: traits,
	}, nil
}

// isBadDocument reports errors caused by the URI or its content rather than transport.
func isBadDocument(err error) bool {
	return errors.Is(err, offchain.ErrInvalidJSON) ||
		errors.Is(err, offchain.ErrUnsupportedScheme) ||
		errors.Is(err, offchain.ErrEmptyURI) ||
		errors.Is(err, offchain.ErrBadDataURI)
}
