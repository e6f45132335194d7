package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husky-nft/nftgate/nft"
	"github.com/husky-nft/nftgate/orm/testutil"
	"github.com/husky-nft/nftgate/types"
)

const testCollection = "8TtouGqvJfjPKRkDVJVw7vN3qk6SM3E8D8iFj72KrKAv"

func testListing() *nft.Listing {
	return &nft.Listing{
		Items: []nft.Item{
			{Entry: types.CollectionEntry{Mint: "mintA", Name: "Husky #1", Image: "a.png"}, Uri: "https://m/1.json", Creators: []string{"c1"}, Position: 0},
			{Entry: types.CollectionEntry{Mint: "mintB", Name: "Husky #2", Image: "b.png"}, Uri: "https://m/2.json", Position: 1},
		},
		Mints: []string{"mintA", "mintB"},
	}
}

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := testutil.NewMockDB(100)
	require.NoError(t, err)
	return NewStore(db, testCollection), mock
}

func TestStore_SaveUpsertsAndPrunes(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "collection_entry" .* ON CONFLICT \("mint"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "collection_entry" WHERE collection_addr = \$1 AND mint NOT IN \(\$2,\$3\)`).
		WithArgs(testCollection, "mintA", "mintB").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), testListing()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveEmptyEnumerationClearsCollection(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "collection_entry" WHERE collection_addr = \$1`).
		WithArgs(testCollection).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), &nft.Listing{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveKeepsRowsOfFailedItems(t *testing.T) {
	store, mock := newTestStore(t)
	listing := testListing()
	listing.Items = listing.Items[:1]
	listing.Failed = 1

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "collection_entry" .* ON CONFLICT \("mint"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "collection_entry" WHERE collection_addr = \$1 AND mint NOT IN \(\$2,\$3\)`).
		WithArgs(testCollection, "mintA", "mintB").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), listing))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveAllItemsFailedPrunesNothingListed(t *testing.T) {
	store, mock := newTestStore(t)
	listing := testListing()
	listing.Items = nil
	listing.Failed = 2

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "collection_entry" WHERE collection_addr = \$1 AND mint NOT IN \(\$2,\$3\)`).
		WithArgs(testCollection, "mintA", "mintB").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), listing))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveRollsBackOnError(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "collection_entry"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), testListing())
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrTypeDatabase))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadEntriesOrdered(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT \* FROM "collection_entry" WHERE collection_addr = \$1 ORDER BY position ASC`).
		WithArgs(testCollection).
		WillReturnRows(sqlmock.NewRows([]string{"mint", "name", "image", "description", "position"}).
			AddRow("mintA", "Husky #1", "a.png", "", 0).
			AddRow("mintB", "Husky #2", "b.png", "good dog", 1))

	entries, err := store.LoadEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.CollectionEntry{
		{Mint: "mintA", Name: "Husky #1", Image: "a.png"},
		{Mint: "mintB", Name: "Husky #2", Image: "b.png", Description: "good dog"},
	}, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadEntriesEmpty(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT \* FROM "collection_entry"`).
		WillReturnRows(sqlmock.NewRows([]string{"mint"}))

	entries, err := store.LoadEntries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
