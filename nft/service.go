package nft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/husky-nft/nftgate/cache"
	"github.com/husky-nft/nftgate/chain"
	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/metaplex"
	"github.com/husky-nft/nftgate/offchain"
	"github.com/husky-nft/nftgate/types"
)

const collectionCacheKey = "collection"

// MetadataFetcher loads off-chain metadata documents.
type MetadataFetcher interface {
	Fetch(ctx context.Context, uri string) (*offchain.Metadata, error)
}

// SnapshotSource serves a previously stored collection listing.
type SnapshotSource interface {
	LoadEntries(ctx context.Context) ([]types.CollectionEntry, error)
}

type Settings struct {
	MetadataProgram solana.PublicKey
	Collection      solana.PublicKey
	Creator         solana.PublicKey
	ItemDelay       time.Duration
	MaxConcurrent   int
	CacheSize       int
	CacheTTL        time.Duration
}

func SettingsFromConfig(cfg *config.Config) Settings {
	cc := cfg.GetChainConfig()
	return Settings{
		MetadataProgram: cc.MetadataProgramKey(),
		Collection:      cc.CollectionKey(),
		Creator:         cc.CreatorKey(),
		ItemDelay:       cfg.GetItemDelay(),
		MaxConcurrent:   cfg.GetMaxConcurrentRequests(),
		CacheSize:       cfg.GetCacheSize(),
		CacheTTL:        cfg.GetCacheTTL(),
	}
}

// Service answers ownership, detail and gallery queries for one collection.
type Service struct {
	chain    chain.Client
	fetcher  MetadataFetcher
	settings Settings
	logger   *slog.Logger

	pdas       *cache.Cache[solana.PublicKey, solana.PublicKey]
	collection *cache.TTLCache[string, []types.CollectionEntry]
	snapshot   SnapshotSource
}

func NewService(client chain.Client, fetcher MetadataFetcher, settings Settings, logger *slog.Logger) *Service {
	if settings.MaxConcurrent < 1 {
		settings.MaxConcurrent = 1
	}
	if settings.CacheSize < 1 {
		settings.CacheSize = 1
	}

	return &Service{
		chain:      client,
		fetcher:    fetcher,
		settings:   settings,
		logger:     logger.With("component", "nft"),
		pdas:       cache.New[solana.PublicKey, solana.PublicKey](settings.CacheSize),
		collection: cache.NewTTL[string, []types.CollectionEntry](1, settings.CacheTTL),
	}
}

// WithSnapshot makes Collection prefer the stored snapshot over a live listing.
func (s *Service) WithSnapshot(src SnapshotSource) *Service {
	s.snapshot = src
	return s
}

func (s *Service) CollectionAddress() string {
	return s.settings.Collection.String()
}

func (s *Service) metadataAddress(mint solana.PublicKey) (solana.PublicKey, error) {
	return cache.GetOrLoad[solana.PublicKey, solana.PublicKey](s.pdas, mint, func() (solana.PublicKey, error) {
		return metaplex.FindMetadataAddress(s.settings.MetadataProgram, mint)
	})
}

// loadMetadata fetches and decodes the metadata account of mint. A missing
// account is a NotFound error and a malformed one a Decode error.
func (s *Service) loadMetadata(ctx context.Context, mint solana.PublicKey) (*metaplex.Metadata, error) {
	pda, err := s.metadataAddress(mint)
	if err != nil {
		return nil, types.NewInternalError("derive metadata address", err)
	}

	data, err := s.chain.AccountData(ctx, pda)
	if err != nil {
		if types.Is(err, types.ErrTypeNotFound) {
			return nil, types.NewNotFoundError("metadata for mint " + mint.String())
		}
		return nil, err
	}

	md, err := metaplex.Decode(data)
	if err != nil {
		return nil, types.NewDecodeError("metadata account "+pda.String(), err)
	}
	return md, nil
}

func parseKey(field, value string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, types.NewBadRequestError(fmt.Sprintf("invalid %s address: %q", field, value))
	}
	return key, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
