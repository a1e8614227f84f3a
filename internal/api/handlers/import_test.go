package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kozsync/internal/database"
	"kozsync/internal/logger"
	"kozsync/internal/services/woocommerce"
	"kozsync/internal/sync"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupImportRouter(t *testing.T, catalogURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New("sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New("error")
	catalog := woocommerce.NewClient(catalogURL, "ck", "cs", log)
	store := sync.NewGormStore(db.DB)

	handler := NewImportHandler(
		sync.NewCategoryImporter(catalog, store, log),
		sync.NewProductImporter(store, store, log),
		log,
	)

	router := gin.New()
	router.POST("/import/categories", handler.Categories)
	router.POST("/import/products", handler.Products)
	return router
}

func TestImportCategoriesRejectsMalformedFeed(t *testing.T) {
	router := setupImportRouter(t, "http://unused.invalid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/categories", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportProductsEndToEnd(t *testing.T) {
	router := setupImportRouter(t, "http://unused.invalid")

	feed := `{"count":2,"products":[
		{"barcode":"123","name":"Widget","price":"19.90"},
		{"name":"no barcode"}
	]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/products", strings.NewReader(feed))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data sync.ProductImportReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Total)
	assert.Equal(t, 1, body.Data.Created)
	assert.Equal(t, 1, body.Data.Skipped)
}

func TestImportCategoriesAgainstFakeCatalog(t *testing.T) {
	catalog := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]woocommerce.Category{})
		case r.Method == http.MethodPost:
			var payload woocommerce.CategoryPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			json.NewEncoder(w).Encode(woocommerce.Category{ID: 99, Name: payload.Name, Slug: payload.Slug, Parent: payload.Parent})
		}
	}))
	t.Cleanup(catalog.Close)

	router := setupImportRouter(t, catalog.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/categories?dry_run=true", strings.NewReader(`{"Elektronik":[{"name":"Telefon"}]}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data sync.CategoryImportReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.TotalMain)
	assert.Equal(t, 1, body.Data.CreatedMain)
	assert.Contains(t, body.Data.Mapping, "Elektronik > Telefon")
}
