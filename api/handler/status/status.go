package status

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/api/cache"
	"github.com/husky-nft/nftgate/api/handler/common"
	"github.com/husky-nft/nftgate/config"
)

const statusCacheExpiration = 250 * time.Millisecond

// StatusHandler reports the build and the collection this instance gates.
type StatusHandler struct {
	*common.BaseHandler
}

var _ common.HandlerRegistrar = (*StatusHandler)(nil)

func NewStatusHandler(base *common.BaseHandler) *StatusHandler {
	return &StatusHandler{BaseHandler: base}
}

func (h *StatusHandler) Register(router fiber.Router) {
	router.Get("/status", cache.New(cache.Config{
		Expiration: statusCacheExpiration,
		Scope:      h.GetService().CollectionAddress(),
	}), h.GetStatus)
}

type StatusResponse struct {
	Version        string `json:"version" extensions:"x-order:0"`
	Commit         string `json:"commit" extensions:"x-order:1"`
	CollectionAddr string `json:"collection_addr" extensions:"x-order:2"`
	Commitment     string `json:"commitment" extensions:"x-order:3"`
	RpcEndpoints   int    `json:"rpc_endpoints" extensions:"x-order:4"`
	Snapshot       bool   `json:"snapshot" extensions:"x-order:5"`
}

// GetStatus handles GET /status
// @Summary Service status
// @Description Get the build version and the configured collection
// @Tags App
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /status [get]
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	chainCfg := h.GetChainConfig()
	return c.JSON(StatusResponse{
		Version:        config.Version,
		Commit:         config.CommitHash,
		CollectionAddr: h.GetService().CollectionAddress(),
		Commitment:     chainCfg.Commitment,
		RpcEndpoints:   len(chainCfg.RpcUrls),
		Snapshot:       h.GetConfig().DBEnabled(),
	})
}
