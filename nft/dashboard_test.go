package nft

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husky-nft/nftgate/offchain"
	"github.com/husky-nft/nftgate/types"
)

func TestDashboard_Owner(t *testing.T) {
	fc := newFakeChain()
	ff := newFakeFetcher()
	seedCollection(t, fc, ff, 2)

	wallet := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	fc.addToken(t, wallet, mint, 1)
	fc.addMetadata(t, mint, "Husky #9", "https://m/owned.json", verified())
	ff.docs["https://m/owned.json"] = &offchain.Metadata{Name: "Husky #9", Image: "img"}

	view := newTestService(fc, ff).Dashboard(context.Background(), wallet.String())
	assert.True(t, view.Owned)
	require.NotNil(t, view.Nft)
	assert.Equal(t, mint.String(), view.Nft.Mint)
	assert.Len(t, view.Collection, 2)
	assert.Empty(t, view.CollectionError)
}

func TestDashboard_DegradesOnErrors(t *testing.T) {
	fc := newFakeChain()
	fc.ownerErr = errors.New("rpc down")
	fc.heldErr = errors.New("listing down")

	view := newTestService(fc, newFakeFetcher()).Dashboard(context.Background(), solana.NewWallet().PublicKey().String())
	assert.False(t, view.Owned)
	assert.Nil(t, view.Nft)
	assert.NotNil(t, view.Collection)
	assert.Empty(t, view.Collection)
	assert.Equal(t, types.CollectionErrorPrefix+"listing down", view.CollectionError)
}

func TestDashboard_DetailsFailureReadsAsNotOwned(t *testing.T) {
	fc := newFakeChain()
	ff := newFakeFetcher()
	wallet := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	fc.addToken(t, wallet, mint, 1)
	fc.addMetadata(t, mint, "Husky #9", "https://m/broken.json", verified())
	ff.errs["https://m/broken.json"] = offchain.ErrInvalidJSON

	view := newTestService(fc, ff).Dashboard(context.Background(), wallet.String())
	assert.False(t, view.Owned)
	assert.Nil(t, view.Nft)
	assert.Empty(t, view.CollectionError)
}
