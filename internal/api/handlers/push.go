package handlers

import (
	"net/http"

	"kozsync/internal/logger"
	"kozsync/internal/queue"
	"kozsync/internal/sync"

	"github.com/gin-gonic/gin"
)

type PushHandler struct {
	pusher    *sync.Pusher
	store     sync.Store
	publisher *queue.Publisher
	logger    *logger.Logger
}

func NewPushHandler(pusher *sync.Pusher, store sync.Store, publisher *queue.Publisher, logger *logger.Logger) *PushHandler {
	return &PushHandler{
		pusher:    pusher,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// One pushes a single staged row inline.
func (h *PushHandler) One(c *gin.Context) {
	id := c.Param("id")

	row, err := h.store.FindByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ürün bulunamadı"})
		return
	}

	result := h.pusher.Push(row, nil)
	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Batch pushes a list of staged rows, inline by default or through the job
// queue when async is set.
func (h *PushHandler) Batch(c *gin.Context) {
	var request struct {
		IDs   []string `json:"ids" binding:"required"`
		Async bool     `json:"async"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Async {
		jobID, err := h.publisher.EnqueuePush(c.Request.Context(), request.IDs)
		if err != nil {
			h.logger.Error("Failed to enqueue push job: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue push job"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"job_id": jobID}})
		return
	}

	report, err := h.pusher.PushBatch(request.IDs)
	if err != nil {
		h.logger.Error("Batch push failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
