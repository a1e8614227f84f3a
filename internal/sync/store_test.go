package sync

import (
	"testing"

	"kozsync/internal/database"
	"kozsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewGormStore(db.DB)
}

func TestGormStoreRoundTrip(t *testing.T) {
	store := testStore(t)

	row := &models.StagedProduct{
		Barcode:    "123",
		Name:       "Widget",
		Price:      19.90,
		Currency:   "TRY",
		SyncStatus: models.SyncStatusPending,
	}
	require.NoError(t, store.Create(row))
	require.NotEmpty(t, row.ID)

	found, err := store.FindByBarcode("123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, row.ID, found.ID)
	assert.Equal(t, "Widget", found.Name)

	found.Name = "Widget Pro"
	require.NoError(t, store.Update(found))

	byID, err := store.FindByID(row.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Widget Pro", byID.Name)
}

func TestGormStoreMissingRowsAreNil(t *testing.T) {
	store := testStore(t)

	row, err := store.FindByBarcode("nope")
	require.NoError(t, err)
	assert.Nil(t, row)

	row, err = store.FindByID("nope")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestGormStoreRecordRun(t *testing.T) {
	store := testStore(t)

	run := &models.ImportRun{
		Kind:  models.ImportKindProducts,
		Total: 5,
	}
	require.NoError(t, store.RecordRun(run))
	assert.NotEmpty(t, run.ID)
}
