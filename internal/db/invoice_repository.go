package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

type InvoiceRepository struct {
	db *PostgresDB
}

func NewInvoiceRepository(database *PostgresDB) *InvoiceRepository {
	return &InvoiceRepository{db: database}
}

var _ store.InvoiceLedger = (*InvoiceRepository)(nil)

// Record appends one sale row. Business validation happens upstream;
// this fails only when the store does.
func (r *InvoiceRepository) Record(ctx context.Context, bookID int64, title string, qty int, unitPrice float64) (*models.Invoice, error) {
	query := `
		INSERT INTO invoices (book_id, book_title, quantity, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING invoice_id, sale_date
	`

	inv := models.Invoice{
		BookID:    bookID,
		BookTitle: title,
		Quantity:  qty,
		Total:     unitPrice * float64(qty),
	}
	err := r.db.runner(ctx).QueryRowContext(ctx, query, inv.BookID, inv.BookTitle, inv.Quantity, inv.Total).
		Scan(&inv.ID, &inv.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to record invoice: %v", store.ErrPersistence, err)
	}

	return &inv, nil
}

// GetByID returns a single invoice
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	query := `
		SELECT invoice_id, sale_date, book_id, book_title, quantity, total_price
		FROM invoices WHERE invoice_id = $1
	`

	var inv models.Invoice
	err := r.db.runner(ctx).QueryRowContext(ctx, query, id).
		Scan(&inv.ID, &inv.SaleDate, &inv.BookID, &inv.BookTitle, &inv.Quantity, &inv.Total)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get invoice: %v", store.ErrPersistence, err)
	}

	return &inv, nil
}

// List returns the full sale history, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	query := `
		SELECT invoice_id, sale_date, book_id, book_title, quantity, total_price
		FROM invoices ORDER BY invoice_id DESC
	`

	rows, err := r.db.runner(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query invoices: %v", store.ErrPersistence, err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.SaleDate, &inv.BookID, &inv.BookTitle, &inv.Quantity, &inv.Total); err != nil {
			return nil, fmt.Errorf("%w: failed to scan invoice: %v", store.ErrPersistence, err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}
