package handlers

import (
	"net/http"
	"strconv"

	"kozsync/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ImportRunHandler struct {
	db *gorm.DB
}

func NewImportRunHandler(db *gorm.DB) *ImportRunHandler {
	return &ImportRunHandler{db: db}
}

func (h *ImportRunHandler) List(c *gin.Context) {
	var runs []models.ImportRun

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	query := h.db.Model(&models.ImportRun{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var total int64
	query.Count(&total)

	if err := query.Order("started_at DESC").Offset(offset).Limit(limit).Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch import runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": runs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
