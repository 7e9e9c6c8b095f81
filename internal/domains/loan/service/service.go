package service

import (
	"context"
	"fmt"

	catalog "bookocean-backend/internal/domains/catalog/model"
	catalogrepo "bookocean-backend/internal/domains/catalog/repository"
	"bookocean-backend/internal/domains/loan/model"
	"bookocean-backend/internal/domains/loan/repository"
	"bookocean-backend/pkg/logger"
)

type loanService struct {
	loans  repository.RepositoryInterface
	books  catalogrepo.RepositoryInterface
	lender Lender
}

// NewService - Constructor. lender nil → saga lender over the two repositories.
func NewService(loans repository.RepositoryInterface, books catalogrepo.RepositoryInterface, lender Lender) ServiceInterface {
	if lender == nil {
		lender = NewSagaLender(books, loans)
	}
	return &loanService{
		loans:  loans,
		books:  books,
		lender: lender,
	}
}

func (s *loanService) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (*model.Loan, error) {
	// STEP 1: validate payload
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// STEP 2: the book must exist when the loan is recorded
	if _, err := s.books.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	// STEP 3: insert
	loan, err := s.loans.Create(ctx, req.ToLoan())
	if err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	return loan, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, id string) (*model.DeleteAck, error) {
	if err := s.loans.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &model.DeleteAck{ID: id, Deleted: true}, nil
}

// ListLoansForBorrower loads the borrower's loans and the whole catalog,
// then joins them in memory. Loans whose book is gone are skipped.
func (s *loanService) ListLoansForBorrower(ctx context.Context, email string) ([]model.EnrichedLoan, error) {
	loans, err := s.loans.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	if len(loans) == 0 {
		return []model.EnrichedLoan{}, nil
	}

	books, err := s.books.List(ctx, catalog.BookFilter{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	enriched := model.Enrich(loans, books)
	if dropped := len(loans) - len(enriched); dropped > 0 {
		logger.Warn("Skipped loans with missing books", map[string]interface{}{
			"email":   email,
			"dropped": dropped,
		})
	}
	return enriched, nil
}

func (s *loanService) Borrow(ctx context.Context, req model.CreateLoanRequest) (*model.BorrowResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.lender.Borrow(ctx, req.ToLoan())
	if err != nil {
		return nil, err
	}

	logger.Info("Book borrowed", map[string]interface{}{
		"loan_id":  result.Loan.ID,
		"book_id":  result.Book.ID,
		"quantity": result.Book.Quantity,
	})
	return result, nil
}

func (s *loanService) Return(ctx context.Context, loanID string) (*model.ReturnResult, error) {
	result, err := s.lender.Return(ctx, loanID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"loan_id": result.LoanID}
	if result.Book != nil {
		fields["book_id"] = result.Book.ID
		fields["quantity"] = result.Book.Quantity
	}
	logger.Info("Book returned", fields)
	return result, nil
}
