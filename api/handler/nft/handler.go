package nft

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/api/cache"
	"github.com/husky-nft/nftgate/api/handler/common"
)

const responseCacheExpiration = 2 * time.Second

type NftHandler struct {
	*common.BaseHandler
}

var _ common.HandlerRegistrar = (*NftHandler)(nil)

func NewNftHandler(base *common.BaseHandler) *NftHandler {
	return &NftHandler{BaseHandler: base}
}

func (h *NftHandler) Register(router fiber.Router) {
	nfts := router.Group("/nft/v1")
	cached := cache.Config{
		Expiration: responseCacheExpiration,
		Scope:      h.GetService().CollectionAddress(),
	}

	nfts.Get("/ownership/:wallet", h.GetOwnership)
	nfts.Get("/tokens/:mint", cache.New(cached), h.GetToken)
	nfts.Get("/collection", cache.New(cached), h.GetCollection)
	nfts.Get("/dashboard/:wallet", h.GetDashboard)
}
