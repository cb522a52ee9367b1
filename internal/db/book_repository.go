package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

type BookRepository struct {
	db *PostgresDB
}

func NewBookRepository(database *PostgresDB) *BookRepository {
	return &BookRepository{db: database}
}

var _ store.BookStore = (*BookRepository)(nil)

// Create inserts a new book and fills in the assigned id
func (r *BookRepository) Create(ctx context.Context, b *models.Book) error {
	query := `
		INSERT INTO books (title, author, genre, price, stock_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING book_id, created_at
	`

	err := r.db.runner(ctx).QueryRowContext(ctx, query, b.Title, b.Author, b.Genre, b.Price, b.Stock).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to create book: %v", store.ErrPersistence, err)
	}

	return nil
}

// GetByID returns a single book
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `
		SELECT book_id, title, author, genre, price, stock_quantity, created_at
		FROM books WHERE book_id = $1
	`

	var b models.Book
	err := r.db.runner(ctx).QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.Stock, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to get book: %v", store.ErrPersistence, err)
	}

	return &b, nil
}

// List returns all books ordered by id
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	query := `
		SELECT book_id, title, author, genre, price, stock_quantity, created_at
		FROM books ORDER BY book_id
	`

	rows, err := r.db.runner(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query books: %v", store.ErrPersistence, err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.Stock, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan book: %v", store.ErrPersistence, err)
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

// AdjustStock applies a signed delta in a single conditional UPDATE, so
// the non-negativity check and the write cannot race each other.
func (r *BookRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE books
		SET stock_quantity = stock_quantity + $1
		WHERE book_id = $2 AND stock_quantity + $1 >= 0
		RETURNING stock_quantity
	`

	var newStock int
	err := r.db.runner(ctx).QueryRowContext(ctx, query, delta, id).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("%w: failed to adjust stock: %v", store.ErrPersistence, err)
	}

	// The guarded update matched nothing: either the book is missing or
	// the delta would drive stock negative.
	var exists bool
	err = r.db.runner(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)`, id).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to check book: %v", store.ErrPersistence, err)
	}
	if !exists {
		return 0, store.ErrNotFound
	}
	return 0, store.ErrInsufficientStock
}

// SetStock overwrites the stored quantity
func (r *BookRepository) SetStock(ctx context.Context, id int64, qty int) error {
	if qty < 0 {
		return store.ErrInvalidArgument
	}

	result, err := r.db.runner(ctx).ExecContext(ctx,
		`UPDATE books SET stock_quantity = $1 WHERE book_id = $2`, qty, id)
	if err != nil {
		return fmt.Errorf("%w: failed to set stock: %v", store.ErrPersistence, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Delete removes a book. Deleting a missing id succeeds silently.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.runner(ctx).ExecContext(ctx, `DELETE FROM books WHERE book_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete book: %v", store.ErrPersistence, err)
	}
	return nil
}
