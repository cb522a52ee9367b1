package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Zenodus/BookstoreInventory/internal/inventory"
	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/publisher"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

// ReorderConsumer watches sale.completed events and files an automatic
// reorder request whenever a sale leaves a book at or below the
// threshold. Requests are not deduplicated; every qualifying sale files
// a new one.
type ReorderConsumer struct {
	svc       *inventory.Service
	pub       *publisher.SalePublisher
	threshold int
}

// NewReorderConsumer wires the worker. pub may be nil; filed requests
// then go unannounced.
func NewReorderConsumer(svc *inventory.Service, pub *publisher.SalePublisher, threshold int) *ReorderConsumer {
	return &ReorderConsumer{svc: svc, pub: pub, threshold: threshold}
}

// ProcessSaleCompleted handles sale.completed events until the channel closes
func (c *ReorderConsumer) ProcessSaleCompleted(ctx context.Context, messages <-chan amqp.Delivery) {
	for msg := range messages {
		log.Printf("📥 Received sale.completed event")

		var event models.SaleCompletedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("❌ Failed to parse event: %v", err)
			msg.Nack(false, false) // Don't requeue bad messages
			continue
		}

		req, err := c.HandleSaleCompleted(ctx, event)
		if err != nil {
			log.Printf("❌ Failed to process sale of book %d: %v", event.BookID, err)
			msg.Nack(false, true) // Requeue for retry
			continue
		}

		if req != nil {
			log.Printf("✅ Automatic reorder #%d filed for %q", req.ID, req.BookTitle)
			if c.pub != nil {
				if err := c.pub.PublishReorderRequested(req); err != nil {
					log.Printf("⚠️ Failed to publish reorder.requested: %v", err)
				}
			}
		}
		msg.Ack(false)
	}
}

// HandleSaleCompleted applies the low-stock policy to one event. It
// returns the filed request, or nil when no reorder was needed.
func (c *ReorderConsumer) HandleSaleCompleted(ctx context.Context, event models.SaleCompletedEvent) (*models.ReorderRequest, error) {
	if !inventory.NeedsReorder(event.RemainingStock, c.threshold) {
		return nil, nil
	}

	req, err := c.svc.RequestStockFromSupplier(ctx, event.BookID, inventory.ReorderQuantity(c.threshold), inventory.DefaultSupplier)
	if err != nil {
		// The book may have been deleted since the sale; nothing to restock then.
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("⚠️ Book %d gone before reorder could be filed", event.BookID)
			return nil, nil
		}
		return nil, err
	}

	return req, nil
}
