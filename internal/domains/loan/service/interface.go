package service

import (
	"context"

	"bookocean-backend/internal/domains/loan/model"
)

// ServiceInterface - Business logic layer của loan
type ServiceInterface interface {
	// CreateLoan only inserts the record. Quantity is the caller's job.
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (*model.Loan, error)

	// DeleteLoan only removes the record. Quantity is the caller's job.
	DeleteLoan(ctx context.Context, id string) (*model.DeleteAck, error)

	ListLoansForBorrower(ctx context.Context, email string) ([]model.EnrichedLoan, error)

	// Borrow and Return couple the quantity change with the loan record
	Borrow(ctx context.Context, req model.CreateLoanRequest) (*model.BorrowResult, error)
	Return(ctx context.Context, loanID string) (*model.ReturnResult, error)
}

// Lender performs the coupled borrow/return steps. Implementations decide
// how the two writes are kept consistent (transaction or compensation).
type Lender interface {
	Borrow(ctx context.Context, loan *model.Loan) (*model.BorrowResult, error)
	Return(ctx context.Context, loanID string) (*model.ReturnResult, error)
}
