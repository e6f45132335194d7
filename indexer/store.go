package indexer

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/husky-nft/nftgate/nft"
	"github.com/husky-nft/nftgate/orm"
	"github.com/husky-nft/nftgate/types"
)

// Store persists the collection snapshot in the collection_entry table.
type Store struct {
	db         *orm.Database
	collection string
}

func NewStore(db *orm.Database, collection string) *Store {
	return &Store{db: db, collection: collection}
}

var upsertByMint = clause.OnConflict{
	Columns:   []clause.Column{{Name: "mint"}},
	UpdateAll: true,
}

// Save upserts the resolved items of listing. Rows are pruned only for mints
// that are no longer enumerated, so items that failed to resolve keep their
// previous row.
func (s *Store) Save(ctx context.Context, listing *nft.Listing) error {
	now := time.Now().UTC()
	rows := make([]types.CollectedCollectionEntry, 0, len(listing.Items))
	for _, item := range listing.Items {
		rows = append(rows, types.CollectedCollectionEntry{
			CollectionAddr: s.collection,
			Mint:           item.Entry.Mint,
			Name:           item.Entry.Name,
			Image:          item.Entry.Image,
			Description:    item.Entry.Description,
			Uri:            item.Uri,
			Creators:       item.Creators,
			Position:       item.Position,
			UpdatedAt:      now,
		})
	}
	mints := listing.Mints

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.Clauses(upsertByMint).CreateInBatches(rows, s.db.GetBatchSize()).Error; err != nil {
				return err
			}
		}

		stale := tx.Where("collection_addr = ?", s.collection)
		if len(mints) > 0 {
			stale = stale.Where("mint NOT IN ?", mints)
		}
		return stale.Delete(&types.CollectedCollectionEntry{}).Error
	})
	if err != nil {
		return types.NewDatabaseError("save collection snapshot", err)
	}
	return nil
}

// LoadEntries returns the stored snapshot in listing order.
func (s *Store) LoadEntries(ctx context.Context) ([]types.CollectionEntry, error) {
	var rows []types.CollectedCollectionEntry
	if err := s.db.WithContext(ctx).
		Where("collection_addr = ?", s.collection).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, types.NewDatabaseError("load collection snapshot", err)
	}

	entries := make([]types.CollectionEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.ToEntry())
	}
	return entries, nil
}
