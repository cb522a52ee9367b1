package store

import (
	"context"
	"errors"

	"github.com/Zenodus/BookstoreInventory/internal/models"
)

var (
	// ErrNotFound is returned when a referenced book or request id is absent
	ErrNotFound = errors.New("not found")
	// ErrInsufficientStock is returned when a stock adjustment would go negative
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidArgument is returned for malformed or out-of-range input
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPersistence wraps failures of the underlying store
	ErrPersistence = errors.New("persistence failure")
)

// BookStore is the durable mapping from book id to book record.
type BookStore interface {
	Create(ctx context.Context, b *models.Book) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	// AdjustStock atomically applies a signed delta and returns the new
	// quantity. The result must never be negative.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	SetStock(ctx context.Context, id int64, qty int) error
	// Delete removes the record. A missing id is a no-op, not an error.
	Delete(ctx context.Context, id int64) error
}

// InvoiceLedger is the append-only store of sale records.
type InvoiceLedger interface {
	Record(ctx context.Context, bookID int64, title string, qty int, unitPrice float64) (*models.Invoice, error)
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
}

// ReorderLedger stores supplier reorder requests with mutable status.
type ReorderLedger interface {
	Create(ctx context.Context, bookID int64, title string, qty int, supplier string) (*models.ReorderRequest, error)
	// UpdateStatus overwrites the status unconditionally; there is no
	// prior-state check.
	UpdateStatus(ctx context.Context, id int64, status models.ReorderStatus) error
	List(ctx context.Context) ([]models.ReorderRequest, error)
}

// TxManager runs fn atomically. Mutations on the same book must be
// serialized through it so a sale's check-then-decrement cannot race a
// concurrent mutation.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
