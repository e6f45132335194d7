package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/api/handler/common"
	"github.com/husky-nft/nftgate/api/handler/nft"
	"github.com/husky-nft/nftgate/api/handler/status"
	"github.com/husky-nft/nftgate/config"
)

func Register(router fiber.Router, svc common.NftService, cfg *config.Config, logger *slog.Logger) {
	base := common.NewBaseHandler(svc, cfg, logger)
	handlers := []common.HandlerRegistrar{
		status.NewStatusHandler(base),
		nft.NewNftHandler(base),
	}

	for _, handler := range handlers {
		handler.Register(router)
	}
}
