package service

import (
	"context"

	"bookocean-backend/internal/domains/catalog/model"
)

// ServiceInterface - Business logic layer của catalog
type ServiceInterface interface {
	ListCategories(ctx context.Context) ([]string, error)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	ListImages(ctx context.Context) ([]string, error)

	AddBook(ctx context.Context, req model.BookRequest) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, req model.BookRequest) (*model.UpdateAck, error)

	// AdjustQuantity is the unguarded atomic increment used by the plain
	// borrow/return endpoints. It never checks quantity >= 0.
	AdjustQuantity(ctx context.Context, id string, delta int) (*model.Book, error)
}
