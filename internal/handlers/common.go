package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Zenodus/BookstoreInventory/internal/store"
)

// statusFromError maps the core error taxonomy onto HTTP status codes.
// Anything unrecognized is treated as a storage failure.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
