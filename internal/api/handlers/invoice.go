package handlers

import (
	"net/http"

	"kozsync/internal/logger"
	"kozsync/internal/services/bizimhesap"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	client *bizimhesap.Client
	logger *logger.Logger
}

func NewInvoiceHandler(client *bizimhesap.Client, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		client: client,
		logger: logger,
	}
}

// Create forwards an order invoice to BizimHesap.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var invoice bizimhesap.Invoice
	if err := c.ShouldBindJSON(&invoice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.client.AddInvoice(&invoice)
	if err != nil {
		h.logger.Error("Failed to create invoice: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}
