package common

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

// RequestIDKey is the fiber local holding the request id.
const RequestIDKey = "request_id"

type HandlerRegistrar interface {
	Register(router fiber.Router)
}

// NftService is the part of nft.Service the handlers serve.
type NftService interface {
	CollectionAddress() string
	Ownership(ctx context.Context, wallet string) (*types.OwnershipResult, error)
	FetchNftDetails(ctx context.Context, mint string) (*types.NftRecord, error)
	Collection(ctx context.Context) ([]types.CollectionEntry, error)
	Dashboard(ctx context.Context, wallet string) types.DashboardView
}

type BaseHandler struct {
	svc    NftService
	cfg    *config.Config
	logger *slog.Logger
}

func NewBaseHandler(svc NftService, cfg *config.Config, logger *slog.Logger) *BaseHandler {
	return &BaseHandler{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

func (h *BaseHandler) GetService() NftService   { return h.svc }
func (h *BaseHandler) GetConfig() *config.Config { return h.cfg }
func (h *BaseHandler) GetChainConfig() *config.ChainConfig {
	return h.cfg.GetChainConfig()
}

// GetRequestLogger returns the handler logger tagged with the request id.
func (h *BaseHandler) GetRequestLogger(c *fiber.Ctx) *slog.Logger {
	if id, ok := c.Locals(RequestIDKey).(string); ok && id != "" {
		return h.logger.With(slog.String(RequestIDKey, id))
	}
	return h.logger
}

// TrackError tracks errors in handlers
func (h *BaseHandler) TrackError(c *fiber.Ctx, errorType string, err error) {
	metrics.TrackError("api", errorType)
	h.GetRequestLogger(c).Debug("request failed",
		slog.String("handler", errorType),
		slog.String("path", c.Path()),
		slog.Any("error", err))
}
