package types

import (
	"time"

	"github.com/lib/pq"
)

type Table struct {
	Model interface{}
	Name  string
}

// CollectedCollectionEntry is one row of the collection snapshot.
type CollectedCollectionEntry struct {
	CollectionAddr string         `gorm:"type:text;index:collection_entry_collection_addr"`
	Mint           string         `gorm:"type:text;primaryKey"`
	Name           string         `gorm:"type:text;index:collection_entry_name"`
	Image          string         `gorm:"type:text"`
	Description    string         `gorm:"type:text"`
	Uri            string         `gorm:"type:text"`
	Creators       pq.StringArray `gorm:"type:text[]"`
	Position       int            `gorm:"type:integer"`
	UpdatedAt      time.Time      `gorm:"type:timestamptz;index:collection_entry_updated_at,sort:desc"`
}

func (CollectedCollectionEntry) TableName() string {
	return "collection_entry"
}

func (e CollectedCollectionEntry) ToEntry() CollectionEntry {
	return CollectionEntry{
		Mint:        e.Mint,
		Name:        e.Name,
		Image:       e.Image,
		Description: e.Description,
	}
}

// Tables lists every model the snapshot store migrates.
var Tables = []Table{
	{Model: &CollectedCollectionEntry{}, Name: CollectedCollectionEntry{}.TableName()},
}
