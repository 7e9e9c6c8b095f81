package repository

import (
	"context"

	"bookocean-backend/internal/domains/loan/model"
)

// RepositoryInterface - data access cho borrow records
// (MongoDB "borrowed" collection, PostgreSQL "loans" table, memory)
type RepositoryInterface interface {
	Create(ctx context.Context, loan *model.Loan) (*model.Loan, error)
	GetByID(ctx context.Context, id string) (*model.Loan, error)

	// Delete returns ErrLoanNotFound when nothing was removed
	Delete(ctx context.Context, id string) error

	// ListByEmail matches email exactly, in store order
	ListByEmail(ctx context.Context, email string) ([]model.Loan, error)

	Ping(ctx context.Context) error
}
