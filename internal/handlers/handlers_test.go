package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zenodus/BookstoreInventory/internal/inventory"
	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := store.NewMemoryStore()
	svc := inventory.NewService(mem, store.NewMemoryInvoices(mem), store.NewMemoryReorders(mem), store.NewMemoryTx(mem))
	// no broker in tests; events just go unpublished
	return NewRouter(NewBookHandler(svc), NewSaleHandler(svc, nil), NewReorderHandler(svc, nil))
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createBook(t *testing.T, router *gin.Engine, title string, price float64, stock int) models.Book {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/books", map[string]any{
		"title": title, "author": "Author", "genre": "Fiction", "price": price, "stock": stock,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var b models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestBookFlow(t *testing.T) {
	router := setupRouter(t)

	b := createBook(t, router, "Dune", 20.00, 10)
	assert.NotZero(t, b.ID)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/books/%d", b.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/books/%d/stock", b.ID), map[string]any{"stock": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/books/%d", b.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/books/%d", b.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// deleting a missing book still succeeds
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/books/%d", b.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookValidation(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/books", map[string]any{"title": "  ", "price": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/books/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/books/1/stock", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleFlow(t *testing.T) {
	router := setupRouter(t)
	b := createBook(t, router, "Dune", 20.00, 10)

	w := doJSON(t, router, http.MethodPost, "/sales", map[string]any{"book_id": b.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code)

	var inv models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, 60.00, inv.Total)
	assert.Equal(t, "Dune", inv.BookTitle)

	// oversell is a conflict and changes nothing
	w = doJSON(t, router, http.MethodPost, "/sales", map[string]any{"book_id": b.ID, "quantity": 100})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/books/%d", b.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 7, got.Stock)

	w = doJSON(t, router, http.MethodGet, "/invoices", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var invoices []models.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invoices))
	assert.Len(t, invoices, 1)

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/invoices/%d", inv.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSaleErrors(t *testing.T) {
	router := setupRouter(t)

	// binding rejects a missing/zero quantity
	w := doJSON(t, router, http.MethodPost, "/sales", map[string]any{"book_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// negative quantity passes binding, fails validation
	b := createBook(t, router, "Dune", 20.00, 10)
	w = doJSON(t, router, http.MethodPost, "/sales", map[string]any{"book_id": b.ID, "quantity": -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/sales", map[string]any{"book_id": 999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLowStockAndReorderFlow(t *testing.T) {
	router := setupRouter(t)
	b := createBook(t, router, "Dune", 20.00, 10)
	createBook(t, router, "Hyperion", 15.00, 40)

	w := doJSON(t, router, http.MethodGet, "/books/low-stock?threshold=15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var low []models.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &low))
	require.Len(t, low, 1)
	assert.Equal(t, b.ID, low[0].ID)

	w = doJSON(t, router, http.MethodPost, "/reorders/scan?threshold=15", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created []models.ReorderRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Len(t, created, 1)
	assert.Equal(t, 30, created[0].Quantity)
	assert.Equal(t, models.ReorderStatusPending, created[0].Status)

	w = doJSON(t, router, http.MethodPost, "/reorders", map[string]any{
		"book_id": b.ID, "quantity": 12, "supplier": "Acme Books",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/reorders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.ReorderRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/reorders/%d/approve", all[0].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/reorders/%d/reject", all[0].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/reorders/999/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/reorders/scan", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	router := setupRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
