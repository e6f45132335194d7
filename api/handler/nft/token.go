package nft

import (
	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/api/handler/common"
)

// GetToken handles GET /nft/v1/tokens/{mint}
// @Summary Get NFT details
// @Description Get the on-chain name and uri together with the off-chain image and traits of a mint
// @Tags NFT
// @Produce json
// @Param mint path string true "Mint address (base58)"
// @Success 200 {object} types.NftRecord
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /nft/v1/tokens/{mint} [get]
func (h *NftHandler) GetToken(c *fiber.Ctx) error {
	mint, err := common.GetMintParam(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	record, err := h.GetService().FetchNftDetails(c.UserContext(), mint)
	if err != nil {
		h.TrackError(c, "token", err)
		return err
	}
	return c.JSON(record)
}
