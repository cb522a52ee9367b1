package db

import (
	"context"
	"fmt"

	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

type ReorderRepository struct {
	db *PostgresDB
}

func NewReorderRepository(database *PostgresDB) *ReorderRepository {
	return &ReorderRepository{db: database}
}

var _ store.ReorderLedger = (*ReorderRepository)(nil)

// Create appends a new request in Pending state
func (r *ReorderRepository) Create(ctx context.Context, bookID int64, title string, qty int, supplier string) (*models.ReorderRequest, error) {
	query := `
		INSERT INTO reorder_requests (book_id, book_title, quantity, supplier, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING request_id, created_at
	`

	req := models.ReorderRequest{
		BookID:    bookID,
		BookTitle: title,
		Quantity:  qty,
		Supplier:  supplier,
		Status:    models.ReorderStatusPending,
	}
	err := r.db.runner(ctx).QueryRowContext(ctx, query,
		req.BookID, req.BookTitle, req.Quantity, req.Supplier, req.Status).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create reorder request: %v", store.ErrPersistence, err)
	}

	return &req, nil
}

// UpdateStatus overwrites the status. No prior-state check: approving or
// rejecting an already-decided request just writes the new status again.
func (r *ReorderRepository) UpdateStatus(ctx context.Context, id int64, status models.ReorderStatus) error {
	result, err := r.db.runner(ctx).ExecContext(ctx,
		`UPDATE reorder_requests SET status = $1 WHERE request_id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("%w: failed to update reorder status: %v", store.ErrPersistence, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// List returns all requests, oldest first
func (r *ReorderRepository) List(ctx context.Context) ([]models.ReorderRequest, error) {
	query := `
		SELECT request_id, book_id, book_title, quantity, supplier, status, created_at
		FROM reorder_requests ORDER BY request_id
	`

	rows, err := r.db.runner(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query reorder requests: %v", store.ErrPersistence, err)
	}
	defer rows.Close()

	var requests []models.ReorderRequest
	for rows.Next() {
		var req models.ReorderRequest
		if err := rows.Scan(&req.ID, &req.BookID, &req.BookTitle, &req.Quantity, &req.Supplier, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan reorder request: %v", store.ErrPersistence, err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
