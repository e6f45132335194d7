package nft

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/husky-nft/nftgate/chain"
	"github.com/husky-nft/nftgate/log"
	"github.com/husky-nft/nftgate/metaplex"
	"github.com/husky-nft/nftgate/offchain"
	"github.com/husky-nft/nftgate/types"
)

var (
	testMetadataProgram = solana.TokenMetadataProgramID
	testCollection      = solana.MustPublicKeyFromBase58("8TtouGqvJfjPKRkDVJVw7vN3qk6SM3E8D8iFj72KrKAv")
	testCreator         = solana.NewWallet().PublicKey()
)

type fakeChain struct {
	mu        sync.Mutex
	byOwner   map[solana.PublicKey][]chain.KeyedData
	held      []chain.KeyedData
	accounts  map[solana.PublicKey][]byte
	ownerErr  error
	heldErr   error
	dataErrs  map[solana.PublicKey]error
	dataCalls int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		byOwner:  make(map[solana.PublicKey][]chain.KeyedData),
		accounts: make(map[solana.PublicKey][]byte),
		dataErrs: make(map[solana.PublicKey]error),
	}
}

func (f *fakeChain) TokenAccountsByOwner(_ context.Context, owner solana.PublicKey) ([]chain.KeyedData, error) {
	if f.ownerErr != nil {
		return nil, f.ownerErr
	}
	return f.byOwner[owner], nil
}

func (f *fakeChain) TokenAccountsHeldBy(_ context.Context, holder solana.PublicKey) ([]chain.KeyedData, error) {
	if f.heldErr != nil {
		return nil, f.heldErr
	}
	if holder != testCreator {
		return []chain.KeyedData{}, nil
	}
	return f.held, nil
}

func (f *fakeChain) AccountData(_ context.Context, addr solana.PublicKey) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dataCalls++
	if err := f.dataErrs[addr]; err != nil {
		return nil, err
	}
	data, ok := f.accounts[addr]
	if !ok {
		return nil, types.NewNotFoundError("account " + addr.String())
	}
	return data, nil
}

// addToken registers a token account of owner holding amount of mint and
// returns its keyed data.
func (f *fakeChain) addToken(t *testing.T, owner, mint solana.PublicKey, amount uint64) chain.KeyedData {
	t.Helper()
	data := make([]byte, types.TokenAccountSize)
	copy(data[0:32], mint.Bytes())
	copy(data[32:64], owner.Bytes())
	binary.LittleEndian.PutUint64(data[64:72], amount)

	keyed := chain.KeyedData{Address: solana.NewWallet().PublicKey(), Data: data}
	f.byOwner[owner] = append(f.byOwner[owner], keyed)
	if owner == testCreator {
		f.held = append(f.held, keyed)
	}
	return keyed
}

// addMetadata stores a metadata account for mint.
func (f *fakeChain) addMetadata(t *testing.T, mint solana.PublicKey, name, uri string, collection *metaplex.Collection) {
	t.Helper()
	pda, err := metaplex.FindMetadataAddress(testMetadataProgram, mint)
	require.NoError(t, err)

	data, err := metaplex.Encode(&metaplex.Metadata{
		Key:             metaplex.KeyMetadataV1,
		UpdateAuthority: testCreator,
		Mint:            mint,
		Data: metaplex.Data{
			Name:   name + "\x00\x00\x00",
			Symbol: "HSKY",
			Uri:    uri,
			Creators: []metaplex.Creator{
				{Address: testCreator, Verified: true, Share: 100},
			},
		},
		IsMutable:  true,
		Collection: collection,
	})
	require.NoError(t, err)
	f.accounts[pda] = data
}

func (f *fakeChain) setRawMetadata(t *testing.T, mint solana.PublicKey, data []byte) {
	t.Helper()
	pda, err := metaplex.FindMetadataAddress(testMetadataProgram, mint)
	require.NoError(t, err)
	f.accounts[pda] = data
}

type fakeFetcher struct {
	mu      sync.Mutex
	docs    map[string]*offchain.Metadata
	errs    map[string]error
	started map[string]time.Time
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		docs:    make(map[string]*offchain.Metadata),
		errs:    make(map[string]error),
		started: make(map[string]time.Time),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, uri string) (*offchain.Metadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started[uri] = time.Now()
	if err := f.errs[uri]; err != nil {
		return nil, err
	}
	doc, ok := f.docs[uri]
	if !ok {
		return nil, errors.New("no document at " + uri)
	}
	return doc, nil
}

func newTestService(c chain.Client, f MetadataFetcher) *Service {
	return NewService(c, f, Settings{
		MetadataProgram: testMetadataProgram,
		Collection:      testCollection,
		Creator:         testCreator,
		ItemDelay:       0,
		MaxConcurrent:   4,
		CacheSize:       16,
		CacheTTL:        time.Minute,
	}, log.Discard())
}

func verified() *metaplex.Collection {
	return &metaplex.Collection{Verified: true, Key: testCollection}
}
