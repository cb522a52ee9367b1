package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zenodus/BookstoreInventory/internal/inventory"
	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/publisher"
)

type ReorderHandler struct {
	svc *inventory.Service
	pub *publisher.SalePublisher
}

func NewReorderHandler(svc *inventory.Service, pub *publisher.SalePublisher) *ReorderHandler {
	return &ReorderHandler{svc: svc, pub: pub}
}

func (h *ReorderHandler) announce(req *models.ReorderRequest) {
	if h.pub == nil {
		return
	}
	if err := h.pub.PublishReorderRequested(req); err != nil {
		log.Printf("⚠️ Failed to publish reorder.requested: %v", err)
	}
}

// CreateReorder files a manual supplier request
func (h *ReorderHandler) CreateReorder(c *gin.Context) {
	var req models.CreateReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.RequestStockFromSupplier(c.Request.Context(), req.BookID, req.Quantity, req.Supplier)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	h.announce(created)
	c.JSON(http.StatusCreated, created)
}

// Scan runs the low-stock scan and files a suggestion per qualifying book.
// Repeated scans on unchanged stock file duplicates; that is the contract.
func (h *ReorderHandler) Scan(c *gin.Context) {
	threshold, err := strconv.Atoi(c.Query("threshold"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid threshold"})
		return
	}

	created, err := h.svc.CheckLowStockAndSuggestReorder(c.Request.Context(), threshold)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	for i := range created {
		h.announce(&created[i])
	}

	c.JSON(http.StatusCreated, created)
}

// ListReorders returns all reorder requests
func (h *ReorderHandler) ListReorders(c *gin.Context) {
	requests, err := h.svc.ListReorders(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// Approve marks a request Approved
func (h *ReorderHandler) Approve(c *gin.Context) {
	h.updateStatus(c, h.svc.ApproveReorder, "reorder approved")
}

// Reject marks a request Rejected
func (h *ReorderHandler) Reject(c *gin.Context) {
	h.updateStatus(c, h.svc.RejectReorder, "reorder rejected")
}

func (h *ReorderHandler) updateStatus(c *gin.Context, fn func(ctx context.Context, id int64) error, msg string) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
