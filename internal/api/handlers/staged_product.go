package handlers

import (
	"net/http"
	"strconv"

	"kozsync/internal/logger"
	"kozsync/internal/models"
	"kozsync/internal/sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StagedProductHandler struct {
	db     *gorm.DB
	store  sync.Store
	logger *logger.Logger
}

func NewStagedProductHandler(db *gorm.DB, store sync.Store, logger *logger.Logger) *StagedProductHandler {
	return &StagedProductHandler{
		db:     db,
		store:  store,
		logger: logger,
	}
}

func (h *StagedProductHandler) List(c *gin.Context) {
	var products []models.StagedProduct

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	// Filters
	syncStatus := c.Query("sync_status")
	search := c.Query("search")

	query := h.db.Model(&models.StagedProduct{})

	if syncStatus != "" {
		query = query.Where("sync_status = ?", syncStatus)
	}

	if search != "" {
		query = query.Where("name LIKE ? OR barcode LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	if err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *StagedProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	product, err := h.store.FindByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

// Reset returns a synced or failed row to pending so it can be pushed again.
func (h *StagedProductHandler) Reset(c *gin.Context) {
	id := c.Param("id")

	product, err := sync.ResetSync(h.store, id)
	if err != nil {
		if err.Error() == "ürün bulunamadı" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to reset product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *StagedProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.db.Delete(&models.StagedProduct{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
