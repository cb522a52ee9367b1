package models

import "time"

// Invoice is the immutable record of one completed sale. It keeps a
// snapshot of the book title so later catalog edits don't rewrite history.
type Invoice struct {
	ID        int64     `json:"id"`
	SaleDate  time.Time `json:"sale_date"`
	BookID    int64     `json:"book_id"`
	BookTitle string    `json:"book_title"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
}

type ProcessSaleRequest struct {
	BookID   int64 `json:"book_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}
