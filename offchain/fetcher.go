package offchain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/husky-nft/nftgate/cache"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

var ErrInvalidJSON = errors.New("metadata is not valid json")

// Metadata is the subset of the off-chain JSON document the dashboard shows.
type Metadata struct {
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Attributes  []types.Trait `json:"attributes"`
}

type rawMetadata struct {
	Name        any             `json:"name"`
	Symbol      any             `json:"symbol"`
	Description any             `json:"description"`
	Image       any             `json:"image"`
	Attributes  json.RawMessage `json:"attributes"`
}

type Fetcher struct {
	reader Reader
	cache  *cache.TTLCache[string, *Metadata]
}

func NewFetcher(reader Reader, cacheSize int, ttl time.Duration) *Fetcher {
	return &Fetcher{
		reader: reader,
		cache:  cache.NewTTL[string, *Metadata](cacheSize, ttl),
	}
}

// Fetch returns the parsed document at uri. Bodies that are not JSON yield
// ErrInvalidJSON. Successful results are cached per URI.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (*Metadata, error) {
	hit := true
	md, err := cache.GetOrLoad[string, *Metadata](f.cache, uri, func() (*Metadata, error) {
		hit = false
		body, err := f.reader.Get(ctx, uri)
		if err != nil {
			return nil, err
		}
		return Parse(body)
	})
	metrics.TrackCacheLookup("metadata", hit)
	return md, err
}

// Parse validates and decodes a metadata document. Fields of an unexpected
// type are left empty, and attributes that are not a list become an empty list.
func Parse(body []byte) (*Metadata, error) {
	if !json.Valid(body) {
		// usually an html error page from the gateway, or the image itself
		return nil, fmt.Errorf("%w: got %s", ErrInvalidJSON, mimetype.Detect(body).String())
	}

	if trimmed := bytes.TrimSpace(body); trimmed[0] != '{' {
		return nil, types.NewDecodeError("metadata json", fmt.Errorf("%w: not an object", ErrInvalidJSON))
	}

	var raw rawMetadata
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, types.NewDecodeError("metadata json", errors.Join(ErrInvalidJSON, err))
	}

	return &Metadata{
		Name:        asString(raw.Name),
		Symbol:      asString(raw.Symbol),
		Description: asString(raw.Description),
		Image:       asString(raw.Image),
		Attributes:  parseAttributes(raw.Attributes),
	}, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.ReplaceAll(s, "\x00", "")
}

func parseAttributes(raw json.RawMessage) []types.Trait {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return []types.Trait{}
	}

	traits := make([]types.Trait, 0, len(items))
	for _, item := range items {
		var trait types.Trait
		if err := json.Unmarshal(item, &trait); err != nil {
			continue
		}
		traits = append(traits, trait)
	}
	return traits
}
