package nft

import "github.com/husky-nft/nftgate/types"

type CollectionResponse struct {
	CollectionAddr string                  `json:"collection_addr" extensions:"x-order:0"`
	Entries        []types.CollectionEntry `json:"entries" extensions:"x-order:1"`
}
