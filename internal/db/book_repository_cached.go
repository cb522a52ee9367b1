package db

import (
	"context"
	"fmt"
	"log"

	"github.com/Zenodus/BookstoreInventory/internal/cache"
	"github.com/Zenodus/BookstoreInventory/internal/models"
	"github.com/Zenodus/BookstoreInventory/internal/store"
)

// CachedBookRepository decorates BookRepository with a Redis read cache.
// Every mutation, including stock adjustments, invalidates the affected
// keys so reads never serve a stale quantity.
type CachedBookRepository struct {
	repo  *BookRepository
	cache *cache.RedisCache
}

func NewCachedBookRepository(repo *BookRepository, cache *cache.RedisCache) *CachedBookRepository {
	return &CachedBookRepository{
		repo:  repo,
		cache: cache,
	}
}

var _ store.BookStore = (*CachedBookRepository)(nil)

// Cache key helpers
func bookKey(id int64) string {
	return fmt.Sprintf("book:%d", id)
}

func allBooksKey() string {
	return "books:all"
}

func (r *CachedBookRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, bookKey(id), allBooksKey()); err != nil {
		log.Printf("⚠️ Failed to invalidate book %d cache: %v", id, err)
	}
}

func (r *CachedBookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.repo.Create(ctx, b); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, allBooksKey()); err != nil {
		log.Printf("⚠️ Failed to invalidate book list cache: %v", err)
	}
	return nil
}

func (r *CachedBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	// Reads inside a transaction go straight to the database; the row may
	// already be locked and mid-change.
	if txFrom(ctx) != nil {
		return r.repo.GetByID(ctx, id)
	}

	cacheKey := bookKey(id)

	var book models.Book
	hit, err := r.cache.Get(ctx, cacheKey, &book)
	if err != nil {
		log.Printf("⚠️ Cache error: %v", err)
	}
	if hit {
		log.Printf("📦 Cache HIT: book %d", id)
		return &book, nil
	}

	log.Printf("💾 Cache MISS: book %d - fetching from DB", id)
	b, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, b); err != nil {
		log.Printf("⚠️ Failed to cache book: %v", err)
	}

	return b, nil
}

func (r *CachedBookRepository) List(ctx context.Context) ([]models.Book, error) {
	cacheKey := allBooksKey()

	var books []models.Book
	hit, err := r.cache.Get(ctx, cacheKey, &books)
	if err != nil {
		log.Printf("⚠️ Cache error: %v", err)
	}
	if hit {
		log.Println("📦 Cache HIT: all books")
		return books, nil
	}

	log.Println("💾 Cache MISS: all books - fetching from DB")
	books, err = r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, books); err != nil {
		log.Printf("⚠️ Failed to cache books: %v", err)
	}

	return books, nil
}

func (r *CachedBookRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	newStock, err := r.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	r.invalidate(ctx, id)
	return newStock, nil
}

func (r *CachedBookRepository) SetStock(ctx context.Context, id int64, qty int) error {
	if err := r.repo.SetStock(ctx, id, qty); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedBookRepository) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}
