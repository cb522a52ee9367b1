package models

import "time"

type ReorderStatus string

const (
	ReorderStatusPending  ReorderStatus = "Pending"
	ReorderStatusApproved ReorderStatus = "Approved"
	ReorderStatusRejected ReorderStatus = "Rejected"
)

// ReorderRequest is a restock order sent conceptually to a supplier.
// It is tracked as a status record only; nothing in this system fulfills it.
type ReorderRequest struct {
	ID        int64         `json:"id"`
	BookID    int64         `json:"book_id"`
	BookTitle string        `json:"book_title"`
	Quantity  int           `json:"quantity"`
	Supplier  string        `json:"supplier"`
	Status    ReorderStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type CreateReorderRequest struct {
	BookID   int64  `json:"book_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Supplier string `json:"supplier" binding:"required"`
}
