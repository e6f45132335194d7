package nft

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/api/handler/common"
	"github.com/husky-nft/nftgate/metrics"
)

// GetDashboard handles GET /nft/v1/dashboard/{wallet}
// @Summary Get the dashboard view
// @Description Ownership, the owned NFT and the collection gallery in one response. Upstream failures degrade the view instead of failing the request.
// @Tags NFT
// @Produce json
// @Param wallet path string true "Wallet address (base58)"
// @Success 200 {object} types.DashboardView
// @Failure 400 {object} common.ErrorResponse
// @Router /nft/v1/dashboard/{wallet} [get]
func (h *NftHandler) GetDashboard(c *fiber.Ctx) error {
	wallet, err := common.GetWalletParam(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	view := h.GetService().Dashboard(c.UserContext(), wallet)
	if view.CollectionError != "" {
		h.GetRequestLogger(c).Debug("dashboard served without collection", slog.String("reason", view.CollectionError))
		metrics.TrackDegraded("collection")
	}
	return c.JSON(view)
}
