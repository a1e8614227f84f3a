package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kozsync/internal/database"
	"kozsync/internal/logger"
	"kozsync/internal/models"
	"kozsync/internal/sync"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *sync.GormStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sync.NewGormStore(db.DB)
	handler := NewStagedProductHandler(db.DB, store, logger.New("error"))

	router := gin.New()
	router.GET("/products", handler.List)
	router.GET("/products/:id", handler.Get)
	router.POST("/products/:id/reset", handler.Reset)
	router.DELETE("/products/:id", handler.Delete)
	return router, store
}

func TestListFiltersBySyncStatus(t *testing.T) {
	router, store := setupRouter(t)

	require.NoError(t, store.Create(&models.StagedProduct{Barcode: "1", Name: "A", SyncStatus: models.SyncStatusPending}))
	require.NoError(t, store.Create(&models.StagedProduct{Barcode: "2", Name: "B", SyncStatus: models.SyncStatusSynced}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?sync_status=synced", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.StagedProduct `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "2", body.Data[0].Barcode)
}

func TestGetMissingProductIs404(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetReturnsRowToPending(t *testing.T) {
	router, store := setupRouter(t)

	message := "store down"
	row := &models.StagedProduct{Barcode: "1", Name: "A", SyncStatus: models.SyncStatusFailed, SyncError: &message}
	require.NoError(t, store.Create(row))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/"+row.ID+"/reset", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	updated, err := store.FindByID(row.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusPending, updated.SyncStatus)
	assert.Nil(t, updated.SyncError)
}
