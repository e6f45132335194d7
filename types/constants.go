package types

import "time"

const (
	// SPL token account layout
	TokenAccountSize        = 165
	TokenAccountOwnerOffset = 32

	// Snapshot indexer
	MinSnapshotInterval = 10 * time.Second
	SnapshotRetryDelay  = 5 * time.Second

	CollectionErrorPrefix = "Failed to load NFT collection: "
)
