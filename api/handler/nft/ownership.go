package nft

import (
	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/api/handler/common"
)

// GetOwnership handles GET /nft/v1/ownership/{wallet}
// @Summary Check collection ownership
// @Description Reports whether the wallet holds an NFT whose verified collection is the configured collection
// @Tags NFT
// @Produce json
// @Param wallet path string true "Wallet address (base58)"
// @Success 200 {object} types.OwnershipResult
// @Failure 400 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /nft/v1/ownership/{wallet} [get]
func (h *NftHandler) GetOwnership(c *fiber.Ctx) error {
	wallet, err := common.GetWalletParam(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := h.GetService().Ownership(c.UserContext(), wallet)
	if err != nil {
		h.TrackError(c, "ownership", err)
		return err
	}
	return c.JSON(result)
}
