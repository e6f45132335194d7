package nft

import (
	"context"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husky-nft/nftgate/offchain"
	"github.com/husky-nft/nftgate/types"
)

func TestFetchNftDetails(t *testing.T) {
	fc := newFakeChain()
	ff := newFakeFetcher()
	mint := solana.NewWallet().PublicKey()
	fc.addMetadata(t, mint, "On-chain name", "https://arweave.net/1", verified())
	ff.docs["https://arweave.net/1"] = &offchain.Metadata{
		Name:  "Husky #1",
		Image: "https://arweave.net/1.png",
		Attributes: []types.Trait{
			{TraitType: "Fur", Value: "Grey"},
		},
	}

	record, err := newTestService(fc, ff).FetchNftDetails(context.Background(), mint.String())
	require.NoError(t, err)
	assert.Equal(t, &types.NftRecord{
		Name:   "Husky #1",
		Image:  "https://arweave.net/1.png",
		Uri:    "https://arweave.net/1",
		Mint:   mint.String(),
		Traits: []types.Trait{{TraitType: "Fur", Value: "Grey"}},
	}, record)
}

func TestFetchNftDetails_NoAttributes(t *testing.T) {
	fc := newFakeChain()
	ff := newFakeFetcher()
	mint := solana.NewWallet().PublicKey()
	fc.addMetadata(t, mint, "n", "https://m/2", nil)
	ff.docs["https://m/2"] = &offchain.Metadata{Name: "n"}

	record, err := newTestService(fc, ff).FetchNftDetails(context.Background(), mint.String())
	require.NoError(t, err)
	assert.NotNil(t, record.Traits)
	assert.Empty(t, record.Traits)
}

func TestFetchNftDetails_Errors(t *testing.T) {
	fc := newFakeChain()
	ff := newFakeFetcher()
	svc := newTestService(fc, ff)

	_, err := svc.FetchNftDetails(context.Background(), "???")
	assert.True(t, types.Is(err, types.ErrTypeBadRequest))

	_, err = svc.FetchNftDetails(context.Background(), solana.NewWallet().PublicKey().String())
	assert.True(t, types.Is(err, types.ErrTypeNotFound))

	mint := solana.NewWallet().PublicKey()
	fc.addMetadata(t, mint, "n", "https://m/html", nil)
	ff.errs["https://m/html"] = offchain.ErrInvalidJSON
	_, err = svc.FetchNftDetails(context.Background(), mint.String())
	assert.ErrorIs(t, err, offchain.ErrInvalidJSON)
	assert.True(t, types.Is(err, types.ErrTypeDecode))

	limited := solana.NewWallet().PublicKey()
	fc.addMetadata(t, limited, "n", "https://m/limited", nil)
	ff.errs["https://m/limited"] = types.NewRateLimitError("m")
	_, err = svc.FetchNftDetails(context.Background(), limited.String())
	assert.True(t, types.Is(err, types.ErrTypeRateLimit))

	plain := solana.NewWallet().PublicKey()
	fc.addMetadata(t, plain, "n", "https://m/other", nil)
	ff.errs["https://m/other"] = fmt.Errorf("wrapped: %w", offchain.ErrUnsupportedScheme)
	_, err = svc.FetchNftDetails(context.Background(), plain.String())
	assert.True(t, types.Is(err, types.ErrTypeDecode))
}
