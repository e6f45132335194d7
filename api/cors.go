package api

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/husky-nft/nftgate/config"
)

const wildcardOrigin = "*"

// addCORS installs the cors middleware when enabled. Wildcard origins never
// carry credentials, and "*.example.com" entries allow any subdomain over
// http and https but not the bare domain.
func addCORS(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	corsCfg := cfg.GetCORSConfig()
	if corsCfg == nil || !corsCfg.Enabled {
		return
	}

	origins, wildcard := sanitizeOrigins(corsCfg.AllowOrigin, logger)
	credentials := corsCfg.AllowCredentials
	if wildcard {
		origins = []string{wildcardOrigin}
		if credentials {
			logger.Warn("CORS credentials disabled for wildcard origins")
			credentials = false
		}
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled without any valid origin; no CORS headers will be sent")
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     strings.Join(corsCfg.AllowMethods, ","),
		AllowHeaders:     strings.Join(corsCfg.AllowHeaders, ","),
		AllowCredentials: credentials,
		ExposeHeaders:    strings.Join(corsCfg.ExposeHeaders, ","),
		MaxAge:           corsCfg.MaxAge,
	}))
}

// sanitizeOrigins normalizes configured origins into the form the cors
// middleware accepts and drops the ones it would reject.
func sanitizeOrigins(raw []string, logger *slog.Logger) ([]string, bool) {
	var out []string
	seen := make(map[string]struct{})
	add := func(o string) {
		if _, ok := seen[o]; !ok {
			seen[o] = struct{}{}
			out = append(out, o)
		}
	}

	for _, origin := range raw {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch {
		case origin == "":
			continue
		case origin == wildcardOrigin:
			return nil, true
		case strings.HasPrefix(origin, "*."):
			host := strings.TrimPrefix(origin, "*.")
			if !validOrigin("https://" + host) {
				logger.Warn("ignoring invalid CORS origin pattern", slog.String("origin", origin))
				continue
			}
			add("https://*." + strings.ToLower(host))
			add("http://*." + strings.ToLower(host))
		case strings.Contains(origin, "://*."):
			if !validOrigin(strings.Replace(origin, "://*.", "://", 1)) {
				logger.Warn("ignoring invalid CORS origin pattern", slog.String("origin", origin))
				continue
			}
			add(strings.ToLower(origin))
		default:
			if !validOrigin(origin) {
				logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
				continue
			}
			add(strings.ToLower(origin))
		}
	}
	return out, false
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.Path == "" && u.RawQuery == "" && u.Fragment == "" && u.User == nil
}
