package service

import (
	"context"
	"fmt"
	"time"

	"bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/internal/domains/catalog/repository"
	"bookocean-backend/pkg/cache"
	"bookocean-backend/pkg/logger"
)

const (
	categoriesCacheKey = "catalog:categories"
	imagesCacheKey     = "catalog:images"

	// generationCacheKey is bumped by every catalog write. Projection keys embed it,
	// so a read that raced a write can only fill a key nobody reads anymore.
	generationCacheKey = "catalog:generation"
)

type catalogService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService wires the catalog service. Pass cache.Noop{} when Redis is disabled.
func NewService(repo repository.RepositoryInterface, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	if c == nil {
		c = cache.Noop{}
	}
	return &catalogService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// ============================================
// READS
// ============================================

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	// generation is read before the store, never after
	key, cacheable := s.projectionKey(ctx, categoriesCacheKey)

	var cached []string
	if cacheable && s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	// Full scan, no index-backed distinct
	books, err := s.repo.List(ctx, model.BookFilter{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := model.DistinctCategories(books)
	if cacheable {
		s.writeCache(ctx, key, categories)
	}
	return categories, nil
}

func (s *catalogService) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *catalogService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) ListImages(ctx context.Context) ([]string, error) {
	key, cacheable := s.projectionKey(ctx, imagesCacheKey)

	var cached []string
	if cacheable && s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	images, err := s.repo.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	if cacheable {
		s.writeCache(ctx, key, images)
	}
	return images, nil
}

// ============================================
// WRITES
// ============================================

func (s *catalogService) AddBook(ctx context.Context, req model.BookRequest) (*model.Book, error) {
	// STEP 1: validate payload
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// STEP 2: insert
	book, err := s.repo.Create(ctx, req.ToBook())
	if err != nil {
		return nil, fmt.Errorf("add book: %w", err)
	}

	// STEP 3: category and image projections are stale now
	s.invalidate(ctx)

	logger.Info("Book added", map[string]interface{}{
		"book_id":  book.ID,
		"category": book.Category,
	})
	return book, nil
}

func (s *catalogService) UpdateBook(ctx context.Context, id string, req model.BookRequest) (*model.UpdateAck, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ack, err := s.repo.Update(ctx, id, req.ToBook())
	if err != nil {
		return nil, err
	}

	if ack.Modified {
		s.invalidate(ctx)
	}
	return ack, nil
}

func (s *catalogService) AdjustQuantity(ctx context.Context, id string, delta int) (*model.Book, error) {
	book, err := s.repo.IncrementQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	if book.Quantity < 0 {
		logger.Warn("Quantity went negative", map[string]interface{}{
			"book_id":  book.ID,
			"quantity": book.Quantity,
			"delta":    delta,
		})
	}
	return book, nil
}

// ============================================
// CACHE HELPERS
// ============================================

// projectionKey returns base scoped to the current catalog generation.
// cacheable is false when the generation cannot be read; the caller then
// bypasses the cache entirely.
func (s *catalogService) projectionKey(ctx context.Context, base string) (key string, cacheable bool) {
	var generation int64
	if _, err := s.cache.Get(ctx, generationCacheKey, &generation); err != nil {
		logger.Warn("Cache generation read failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	return fmt.Sprintf("%s:v%d", base, generation), true
}

// readCache reports a hit. Cache errors count as a miss.
func (s *catalogService) readCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return hit
}

func (s *catalogService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		logger.Warn("Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// invalidate runs after the store write. Old generations expire by TTL.
func (s *catalogService) invalidate(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, generationCacheKey); err != nil {
		logger.Warn("Cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
