package publisher

import (
	"github.com/Zenodus/BookstoreInventory/internal/messaging"
	"github.com/Zenodus/BookstoreInventory/internal/models"
)

// SalePublisher emits sale.completed and reorder.requested events
type SalePublisher struct {
	mq *messaging.RabbitMQ
}

func NewSalePublisher(mq *messaging.RabbitMQ) (*SalePublisher, error) {
	for _, queue := range []string{messaging.SaleCompletedQueue, messaging.ReorderRequestedQueue} {
		if err := mq.DeclareQueue(queue); err != nil {
			return nil, err
		}
	}

	return &SalePublisher{mq: mq}, nil
}

// PublishSaleCompleted announces a committed sale together with the
// stock left after it
func (p *SalePublisher) PublishSaleCompleted(inv *models.Invoice, remainingStock int) error {
	event := models.SaleCompletedEvent{
		InvoiceID:      inv.ID,
		BookID:         inv.BookID,
		BookTitle:      inv.BookTitle,
		Quantity:       inv.Quantity,
		Total:          inv.Total,
		RemainingStock: remainingStock,
	}

	return p.mq.PublishJSON(messaging.SaleCompletedQueue, event)
}

// PublishReorderRequested announces a filed reorder request
func (p *SalePublisher) PublishReorderRequested(req *models.ReorderRequest) error {
	event := models.ReorderRequestedEvent{
		RequestID: req.ID,
		BookID:    req.BookID,
		BookTitle: req.BookTitle,
		Quantity:  req.Quantity,
		Supplier:  req.Supplier,
	}

	return p.mq.PublishJSON(messaging.ReorderRequestedQueue, event)
}
