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

// sagaLender couples the two writes for stores without multi-document
// transactions. Each forward step has a compensating step; a failed
// compensation leaves the stores diverged and is logged at error level.
type sagaLender struct {
	books catalogrepo.RepositoryInterface
	loans repository.RepositoryInterface
}

func NewSagaLender(books catalogrepo.RepositoryInterface, loans repository.RepositoryInterface) Lender {
	return &sagaLender{books: books, loans: loans}
}

func (l *sagaLender) Borrow(ctx context.Context, loan *model.Loan) (*model.BorrowResult, error) {
	// STEP 1: take a copy; fails with ErrOutOfStock instead of going negative
	book, err := l.books.DecrementIfAvailable(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}

	// STEP 2: record the loan
	created, err := l.loans.Create(ctx, loan)
	if err == nil {
		return &model.BorrowResult{Loan: *created, Book: *book}, nil
	}

	// STEP 3: compensate, put the copy back
	if _, compErr := l.books.IncrementQuantity(ctx, loan.BookID, 1); compErr != nil {
		logger.ErrorWithFields("Irrecoverable divergence: copy taken without loan", compErr, map[string]interface{}{
			"book_id":    loan.BookID,
			"email":      loan.Email,
			"insert_err": err.Error(),
		})
	}
	return nil, fmt.Errorf("create loan: %w", err)
}

func (l *sagaLender) Return(ctx context.Context, loanID string) (*model.ReturnResult, error) {
	// STEP 1: resolve the loan
	loan, err := l.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	// STEP 2: delete first, a concurrent return of the same loan loses here
	if err := l.loans.Delete(ctx, loan.ID); err != nil {
		return nil, err
	}

	result := &model.ReturnResult{LoanID: loan.ID}

	// STEP 3: give the copy back
	book, err := l.books.IncrementQuantity(ctx, loan.BookID, 1)
	switch {
	case err == nil:
		result.Book = book
		return result, nil
	case catalog.IsNotFoundError(err), catalog.IsValidationError(err):
		logger.Warn("Returned loan references a missing book", map[string]interface{}{
			"loan_id": loan.ID,
			"book_id": loan.BookID,
		})
		return result, nil
	}

	// STEP 4: compensate, restore the loan record
	if _, compErr := l.loans.Create(ctx, loan); compErr != nil {
		logger.ErrorWithFields("Irrecoverable divergence: loan deleted without copy returned", compErr, map[string]interface{}{
			"loan_id":       loan.ID,
			"book_id":       loan.BookID,
			"increment_err": err.Error(),
		})
	}
	return nil, fmt.Errorf("return copy: %w", err)
}
