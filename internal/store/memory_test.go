package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zenodus/BookstoreInventory/internal/models"
)

func TestMemoryStore_BookCRUD(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()

	b := models.Book{Title: "Dune", Author: "Herbert", Genre: "SF", Price: 20, Stock: 5}
	require.NoError(t, mem.Create(ctx, &b))
	assert.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := mem.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)

	// returned value is a copy, mutating it must not touch the store
	got.Stock = 999
	again, err := mem.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Stock)

	require.NoError(t, mem.Delete(ctx, b.ID))
	_, err = mem.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting again is still fine
	assert.NoError(t, mem.Delete(ctx, b.ID))
}

func TestMemoryStore_List_OrderedByID(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()

	for _, title := range []string{"C", "A", "B"} {
		b := models.Book{Title: title, Price: 1, Stock: 1}
		require.NoError(t, mem.Create(ctx, &b))
	}

	books, err := mem.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{books[0].Title, books[1].Title, books[2].Title})
}

func TestMemoryStore_AdjustStock(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	b := models.Book{Title: "Dune", Price: 20, Stock: 5}
	require.NoError(t, mem.Create(ctx, &b))

	newStock, err := mem.AdjustStock(ctx, b.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, newStock)

	_, err = mem.AdjustStock(ctx, b.ID, -3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	got, err := mem.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock, "failed adjustment must not change stock")

	newStock, err = mem.AdjustStock(ctx, b.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, newStock)

	_, err = mem.AdjustStock(ctx, 999, -1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetStock(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	b := models.Book{Title: "Dune", Price: 20, Stock: 5}
	require.NoError(t, mem.Create(ctx, &b))

	require.NoError(t, mem.SetStock(ctx, b.ID, 0))
	got, err := mem.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	assert.ErrorIs(t, mem.SetStock(ctx, b.ID, -1), ErrInvalidArgument)
	assert.ErrorIs(t, mem.SetStock(ctx, 999, 3), ErrNotFound)
}

func TestMemoryInvoices(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	invoices := NewMemoryInvoices(mem)

	inv, err := invoices.Record(ctx, 7, "Dune", 3, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inv.ID)
	assert.Equal(t, 60.0, inv.Total)
	assert.False(t, inv.SaleDate.IsZero())

	got, err := invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.BookTitle)

	_, err = invoices.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := invoices.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryReorders(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	reorders := NewMemoryReorders(mem)

	req, err := reorders.Create(ctx, 7, "Dune", 30, "Acme Books")
	require.NoError(t, err)
	assert.Equal(t, models.ReorderStatusPending, req.Status)
	assert.False(t, req.CreatedAt.IsZero())

	require.NoError(t, reorders.UpdateStatus(ctx, req.ID, models.ReorderStatusApproved))
	// overwrite with no prior-state check
	require.NoError(t, reorders.UpdateStatus(ctx, req.ID, models.ReorderStatusRejected))

	all, err := reorders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.ReorderStatusRejected, all[0].Status)

	assert.ErrorIs(t, reorders.UpdateStatus(ctx, 999, models.ReorderStatusApproved), ErrNotFound)
}

func TestMemoryTx_AtomicSale(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	invoices := NewMemoryInvoices(mem)
	tx := NewMemoryTx(mem)

	b := models.Book{Title: "Dune", Price: 20, Stock: 5}
	require.NoError(t, mem.Create(ctx, &b))

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		book, err := mem.GetByID(ctx, b.ID)
		if err != nil {
			return err
		}
		if _, err := mem.AdjustStock(ctx, book.ID, -3); err != nil {
			return err
		}
		_, err = invoices.Record(ctx, book.ID, book.Title, 3, book.Price)
		return err
	})
	require.NoError(t, err)

	got, err := mem.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}
