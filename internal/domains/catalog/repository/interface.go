package repository

import (
	"context"

	"bookocean-backend/internal/domains/catalog/model"
)

// RepositoryInterface defines the contract for catalog data access.
// Implemented for MongoDB (books collection), PostgreSQL (books table) and memory.
type RepositoryInterface interface {
	// Create inserts a new book and assigns its id
	Create(ctx context.Context, book *model.Book) (*model.Book, error)

	// GetByID returns ErrInvalidBookID for malformed ids, ErrBookNotFound if absent
	GetByID(ctx context.Context, id string) (*model.Book, error)

	// List returns every book matching filter, in store order. No pagination.
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, error)

	// ListImages projects the image field over the whole catalog
	ListImages(ctx context.Context) ([]string, error)

	// Update overwrites all editorial fields including quantity.
	// Returns ErrBookNotFound if no book matched.
	Update(ctx context.Context, id string, book *model.Book) (*model.UpdateAck, error)

	// IncrementQuantity adds delta to quantity as a single store-side operation
	// and returns the book after the update. Negative results are NOT prevented.
	IncrementQuantity(ctx context.Context, id string, delta int) (*model.Book, error)

	// DecrementIfAvailable subtracts one copy only when quantity > 0, atomically.
	// Returns ErrOutOfStock when quantity is 0, ErrBookNotFound when absent.
	DecrementIfAvailable(ctx context.Context, id string) (*model.Book, error)

	// Ping checks the underlying store
	Ping(ctx context.Context) error
}
