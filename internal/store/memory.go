package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Zenodus/BookstoreInventory/internal/models"
)

// MemoryStore holds the catalog and both ledgers in process memory.
// It backs the tests and local runs without a database. The ledger
// interfaces are exposed through the MemoryInvoices and MemoryReorders
// wrappers sharing this store and its lock.
type MemoryStore struct {
	mu           sync.RWMutex
	nextBookID   int64
	nextInvID    int64
	nextReqID    int64
	booksByID    map[int64]models.Book
	invoices     []models.Invoice
	reordersByID map[int64]models.ReorderRequest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextBookID:   1,
		nextInvID:    1,
		nextReqID:    1,
		booksByID:    make(map[int64]models.Book),
		reordersByID: make(map[int64]models.ReorderRequest),
	}
}

// txKey marks a context as already holding the store-wide write lock,
// so the per-call locks below become no-ops inside a transaction.
type txKey struct{}

func isTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}

func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}

func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}

func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

var _ BookStore = (*MemoryStore)(nil)

func (m *MemoryStore) Create(ctx context.Context, b *models.Book) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	b.ID = m.nextBookID
	m.nextBookID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	m.booksByID[b.ID] = *b
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	b, ok := m.booksByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]models.Book, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]models.Book, 0, len(m.booksByID))
	for _, b := range m.booksByID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	b, ok := m.booksByID[id]
	if !ok {
		return 0, ErrNotFound
	}
	next := b.Stock + delta
	if next < 0 {
		return 0, ErrInsufficientStock
	}
	b.Stock = next
	m.booksByID[id] = b
	return next, nil
}

func (m *MemoryStore) SetStock(ctx context.Context, id int64, qty int) error {
	if qty < 0 {
		return ErrInvalidArgument
	}
	m.wlock(ctx)
	defer m.wunlock(ctx)
	b, ok := m.booksByID[id]
	if !ok {
		return ErrNotFound
	}
	b.Stock = qty
	m.booksByID[id] = b
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	delete(m.booksByID, id)
	return nil
}

// MemoryInvoices implements InvoiceLedger over the shared store.
type MemoryInvoices struct{ store *MemoryStore }

func NewMemoryInvoices(store *MemoryStore) *MemoryInvoices { return &MemoryInvoices{store: store} }

var _ InvoiceLedger = (*MemoryInvoices)(nil)

func (mi *MemoryInvoices) Record(ctx context.Context, bookID int64, title string, qty int, unitPrice float64) (*models.Invoice, error) {
	mi.store.wlock(ctx)
	defer mi.store.wunlock(ctx)
	inv := models.Invoice{
		ID:        mi.store.nextInvID,
		SaleDate:  time.Now().UTC(),
		BookID:    bookID,
		BookTitle: title,
		Quantity:  qty,
		Total:     unitPrice * float64(qty),
	}
	mi.store.nextInvID++
	mi.store.invoices = append(mi.store.invoices, inv)
	cp := inv
	return &cp, nil
}

func (mi *MemoryInvoices) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	for _, inv := range mi.store.invoices {
		if inv.ID == id {
			cp := inv
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (mi *MemoryInvoices) List(ctx context.Context) ([]models.Invoice, error) {
	mi.store.rlock(ctx)
	defer mi.store.runlock(ctx)
	out := make([]models.Invoice, len(mi.store.invoices))
	copy(out, mi.store.invoices)
	return out, nil
}

// MemoryReorders implements ReorderLedger over the shared store.
type MemoryReorders struct{ store *MemoryStore }

func NewMemoryReorders(store *MemoryStore) *MemoryReorders { return &MemoryReorders{store: store} }

var _ ReorderLedger = (*MemoryReorders)(nil)

func (mr *MemoryReorders) Create(ctx context.Context, bookID int64, title string, qty int, supplier string) (*models.ReorderRequest, error) {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	req := models.ReorderRequest{
		ID:        mr.store.nextReqID,
		BookID:    bookID,
		BookTitle: title,
		Quantity:  qty,
		Supplier:  supplier,
		Status:    models.ReorderStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	mr.store.nextReqID++
	mr.store.reordersByID[req.ID] = req
	cp := req
	return &cp, nil
}

func (mr *MemoryReorders) UpdateStatus(ctx context.Context, id int64, status models.ReorderStatus) error {
	mr.store.wlock(ctx)
	defer mr.store.wunlock(ctx)
	req, ok := mr.store.reordersByID[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	mr.store.reordersByID[id] = req
	return nil
}

func (mr *MemoryReorders) List(ctx context.Context) ([]models.ReorderRequest, error) {
	mr.store.rlock(ctx)
	defer mr.store.runlock(ctx)
	out := make([]models.ReorderRequest, 0, len(mr.store.reordersByID))
	for _, r := range mr.store.reordersByID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryTx emulates a transaction boundary with the store-wide write lock.
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
