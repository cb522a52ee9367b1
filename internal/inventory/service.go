package inventory

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

// DefaultSupplier receives automatic reorder requests from the low-stock scan
const DefaultSupplier = "Default Supplier"

// Service coordinates the catalog, the invoice ledger and the reorder
// ledger. All mutations on a book go through here.
type Service struct {
	books    store.BookStore
	invoices store.InvoiceLedger
	reorders store.ReorderLedger
	tx       store.TxManager
}

func NewService(books store.BookStore, invoices store.InvoiceLedger, reorders store.ReorderLedger, tx store.TxManager) *Service {
	return &Service{
		books:    books,
		invoices: invoices,
		reorders: reorders,
		tx:       tx,
	}
}

// AddBook validates and creates a catalog entry
func (s *Service) AddBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be blank", store.ErrInvalidArgument)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", store.ErrInvalidArgument)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", store.ErrInvalidArgument)
	}

	book := models.Book{
		Title:  req.Title,
		Author: req.Author,
		Genre:  req.Genre,
		Price:  req.Price,
		Stock:  req.Stock,
	}
	if err := s.books.Create(ctx, &book); err != nil {
		return nil, err
	}

	log.Printf("✅ Book added: %s | Stock: %d", book.Title, book.Stock)
	return &book, nil
}

func (s *Service) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	return s.books.GetByID(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.books.List(ctx)
}

// UpdateStock overwrites a book's stock quantity
func (s *Service) UpdateStock(ctx context.Context, id int64, newQty int) error {
	if err := s.books.SetStock(ctx, id, newQty); err != nil {
		return err
	}
	log.Printf("✅ Stock updated for Book ID: %d | New Stock: %d", id, newQty)
	return nil
}

// DeleteBook removes a book. A missing id is a silent no-op.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := s.books.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("✅ Book ID %d removed from inventory", id)
	return nil
}

// ProcessSale decrements stock and appends an invoice as one atomic
// unit. It returns the created invoice and the remaining stock.
func (s *Service) ProcessSale(ctx context.Context, bookID int64, qty int) (*models.Invoice, int, error) {
	if qty <= 0 {
		return nil, 0, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidArgument)
	}

	var (
		inv       *models.Invoice
		remaining int
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// Snapshot title and price before touching stock, so the invoice
		// reflects the book as it was at the moment of sale.
		book, err := s.books.GetByID(ctx, bookID)
		if err != nil {
			return err
		}

		newStock, err := s.books.AdjustStock(ctx, bookID, -qty)
		if err != nil {
			return err
		}

		created, err := s.invoices.Record(ctx, book.ID, book.Title, qty, book.Price)
		if err != nil {
			// Restore the decrement so the sale is never half-applied,
			// even on stores without transactional rollback.
			if _, rbErr := s.books.AdjustStock(ctx, bookID, qty); rbErr != nil {
				log.Printf("❌ Failed to restore stock for book %d: %v", bookID, rbErr)
			}
			return err
		}

		inv = created
		remaining = newStock
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	log.Printf("✅ Sale processed | Book ID: %d | Qty: %d | Total: $%.2f", bookID, qty, inv.Total)
	return inv, remaining, nil
}

// CheckLowStock returns the books at or below the threshold. No mutation.
func (s *Service) CheckLowStock(ctx context.Context, threshold int) ([]models.Book, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative", store.ErrInvalidArgument)
	}

	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	var low []models.Book
	for _, b := range books {
		if NeedsReorder(b.Stock, threshold) {
			low = append(low, b)
		}
	}
	return low, nil
}

// CheckLowStockAndSuggestReorder files a Pending reorder request for
// every book at or below the threshold. There is no deduplication:
// repeated scans on unchanged stock file duplicate requests.
func (s *Service) CheckLowStockAndSuggestReorder(ctx context.Context, threshold int) ([]models.ReorderRequest, error) {
	low, err := s.CheckLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}

	var created []models.ReorderRequest
	for _, b := range low {
		req, err := s.reorders.Create(ctx, b.ID, b.Title, ReorderQuantity(threshold), DefaultSupplier)
		if err != nil {
			return created, err
		}
		log.Printf("📦 Reorder suggested | Book: %s | Qty: %d", req.BookTitle, req.Quantity)
		created = append(created, *req)
	}
	return created, nil
}

// RequestStockFromSupplier files a manual reorder request
func (s *Service) RequestStockFromSupplier(ctx context.Context, bookID int64, qty int, supplier string) (*models.ReorderRequest, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", store.ErrInvalidArgument)
	}
	if strings.TrimSpace(supplier) == "" {
		return nil, fmt.Errorf("%w: supplier must not be blank", store.ErrInvalidArgument)
	}

	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	req, err := s.reorders.Create(ctx, book.ID, book.Title, qty, supplier)
	if err != nil {
		return nil, err
	}

	log.Printf("📦 Reorder requested | Book: %s | Qty: %d | Supplier: %s", req.BookTitle, req.Quantity, req.Supplier)
	return req, nil
}

// ApproveReorder marks a request Approved regardless of its current status
func (s *Service) ApproveReorder(ctx context.Context, id int64) error {
	return s.reorders.UpdateStatus(ctx, id, models.ReorderStatusApproved)
}

// RejectReorder marks a request Rejected regardless of its current status
func (s *Service) RejectReorder(ctx context.Context, id int64) error {
	return s.reorders.UpdateStatus(ctx, id, models.ReorderStatusRejected)
}

func (s *Service) ListReorders(ctx context.Context) ([]models.ReorderRequest, error) {
	return s.reorders.List(ctx)
}

func (s *Service) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	return s.invoices.List(ctx)
}

func (s *Service) GetInvoice(ctx context.Context, id int64) (*models.Invoice, error) {
	return s.invoices.GetByID(ctx, id)
}
