package cache

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
)

const defaultExpiration = time.Second

// Config configures the response cache of read-only nft routes.
type Config struct {
	Expiration time.Duration
	// Scope prefixes every key, normally the collection address, so a
	// response is never served for a different collection.
	Scope string
}

// New returns a response cache for GET routes. Requests sent with
// "Cache-Control: no-cache" bypass it; the X-Cache header reports hit or miss.
func New(cfg Config) fiber.Handler {
	if cfg.Expiration <= 0 {
		cfg.Expiration = defaultExpiration
	}

	return cache.New(cache.Config{
		Expiration: cfg.Expiration,
		Next:       wantsFresh,
		KeyGenerator: func(c *fiber.Ctx) string {
			return Key(cfg.Scope, c.Path(), string(c.Request().URI().QueryString()))
		},
	})
}

// Key builds the cache key of a request path and query under scope.
func Key(scope, path, query string) string {
	key := scope + "|" + path
	if query != "" {
		key += "?" + query
	}
	return key
}

func wantsFresh(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderCacheControl)), "no-cache")
}
