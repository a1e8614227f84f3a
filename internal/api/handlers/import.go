package handlers

import (
	"net/http"
	"strconv"

	"kozsync/internal/logger"
	"kozsync/internal/sync"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	categories *sync.CategoryImporter
	products   *sync.ProductImporter
	logger     *logger.Logger
}

func NewImportHandler(categories *sync.CategoryImporter, products *sync.ProductImporter, logger *logger.Logger) *ImportHandler {
	return &ImportHandler{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// Categories imports a category feed posted as the request body.
// Query: dry_run, limit.
func (h *ImportHandler) Categories(c *gin.Context) {
	feed, err := sync.ReadCategoryFeed(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := sync.CategoryImportOptions{
		DryRun: c.Query("dry_run") == "true",
	}
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	report, err := h.categories.Import(feed, opts)
	if err != nil {
		h.logger.Error("Category import failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}

// Products imports a product feed posted as the request body.
// Query: dry_run, offset, limit.
func (h *ImportHandler) Products(c *gin.Context) {
	feed, err := sync.ReadProductFeed(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := sync.ProductImportOptions{
		DryRun: c.Query("dry_run") == "true",
	}
	opts.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	report, err := h.products.Import(feed, opts)
	if err != nil {
		h.logger.Error("Product import failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
