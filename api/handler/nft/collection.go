package nft

import (
	"github.com/gofiber/fiber/v2"
)

// GetCollection handles GET /nft/v1/collection
// @Summary List the collection
// @Description List the NFTs held by the collection creator. Items whose metadata cannot be resolved are omitted.
// @Tags NFT
// @Produce json
// @Success 200 {object} CollectionResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /nft/v1/collection [get]
func (h *NftHandler) GetCollection(c *fiber.Ctx) error {
	entries, err := h.GetService().Collection(c.UserContext())
	if err != nil {
		h.TrackError(c, "collection", err)
		return err
	}

	return c.JSON(CollectionResponse{
		CollectionAddr: h.GetService().CollectionAddress(),
		Entries:        entries,
	})
}
