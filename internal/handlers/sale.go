package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zenodus/BookstoreInventory/internal/inventory"
	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/publisher"
)

type SaleHandler struct {
	svc *inventory.Service
	pub *publisher.SalePublisher
}

// NewSaleHandler wires the sale endpoints. pub may be nil when no broker
// is configured; sales then simply go unannounced.
func NewSaleHandler(svc *inventory.Service, pub *publisher.SalePublisher) *SaleHandler {
	return &SaleHandler{svc: svc, pub: pub}
}

// ProcessSale sells a quantity of one book and returns the invoice
func (h *SaleHandler) ProcessSale(c *gin.Context) {
	var req models.ProcessSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, remaining, err := h.svc.ProcessSale(c.Request.Context(), req.BookID, req.Quantity)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	// The sale is committed; a publish failure only costs the event.
	if h.pub != nil {
		if err := h.pub.PublishSaleCompleted(inv, remaining); err != nil {
			log.Printf("⚠️ Failed to publish sale.completed: %v", err)
		}
	}

	c.JSON(http.StatusCreated, inv)
}

// ListInvoices returns the sale history
func (h *SaleHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.svc.ListInvoices(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice returns a single invoice
func (h *SaleHandler) GetInvoice(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	inv, err := h.svc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, inv)
}
