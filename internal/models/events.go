package models

// SaleCompletedEvent is published after a sale has been committed
type SaleCompletedEvent struct {
	InvoiceID      int64   `json:"invoice_id"`
	BookID         int64   `json:"book_id"`
	BookTitle      string  `json:"book_title"`
	Quantity       int     `json:"quantity"`
	Total          float64 `json:"total"`
	RemainingStock int     `json:"remaining_stock"`
}

// ReorderRequestedEvent is published when a reorder request is filed,
// automatically or by hand
type ReorderRequestedEvent struct {
	RequestID int64  `json:"request_id"`
	BookID    int64  `json:"book_id"`
	BookTitle string `json:"book_title"`
	Quantity  int    `json:"quantity"`
	Supplier  string `json:"supplier"`
}
