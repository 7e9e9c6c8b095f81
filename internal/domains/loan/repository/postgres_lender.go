package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	catalog "bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/internal/domains/loan/model"
	"bookocean-backend/pkg/database"
	"bookocean-backend/pkg/logger"
)

const lenderBookColumns = `id::text, title, author, category, image, quantity, rating`

// PostgresLender runs borrow and return as single transactions spanning
// the books and loans tables, so no compensation is ever needed.
type PostgresLender struct {
	pool *pgxpool.Pool
}

func NewPostgresLender(pool *pgxpool.Pool) *PostgresLender {
	return &PostgresLender{pool: pool}
}

func scanLenderBook(row pgx.Row) (*catalog.Book, error) {
	var b catalog.Book
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Image, &b.Quantity, &b.Rating); err != nil {
		return nil, err
	}
	return &b, nil
}

// Borrow: guarded decrement + insert loan, one transaction
func (l *PostgresLender) Borrow(ctx context.Context, loan *model.Loan) (*model.BorrowResult, error) {
	bookID, err := uuid.Parse(loan.BookID)
	if err != nil {
		return nil, catalog.NewInvalidBookIDError(loan.BookID)
	}

	return database.WithTransactionResult(ctx, l.pool, func(tx pgx.Tx) (*model.BorrowResult, error) {
		// STEP 1: decrement only if a copy is available (row lock held until commit)
		book, err := scanLenderBook(tx.QueryRow(ctx,
			`UPDATE books SET quantity = quantity - 1 WHERE id = $1 AND quantity > 0 RETURNING `+lenderBookColumns,
			bookID.String(),
		))
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("decrement quantity: %w", err)
			}
			return nil, l.missOrExhausted(ctx, tx, loan.BookID, bookID.String())
		}

		// STEP 2: record the loan
		created, err := insertLoan(ctx, tx, loan)
		if err != nil {
			return nil, err
		}

		return &model.BorrowResult{Loan: *created, Book: *book}, nil
	})
}

func (l *PostgresLender) missOrExhausted(ctx context.Context, tx pgx.Tx, rawID, key string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, key).Scan(&exists); err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if !exists {
		return catalog.NewBookNotFoundError(rawID)
	}
	return catalog.NewOutOfStockError(rawID)
}

// Return: delete loan + increment its book, one transaction.
// A loan whose book is gone is still deleted; the orphan is logged.
func (l *PostgresLender) Return(ctx context.Context, loanID string) (*model.ReturnResult, error) {
	key, err := parseUUID(loanID)
	if err != nil {
		return nil, err
	}

	return database.WithTransactionResult(ctx, l.pool, func(tx pgx.Tx) (*model.ReturnResult, error) {
		var bookID string
		err := tx.QueryRow(ctx, `DELETE FROM loans WHERE id = $1 RETURNING book_id`, key).Scan(&bookID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewLoanNotFoundError(loanID)
			}
			return nil, fmt.Errorf("delete loan: %w", err)
		}

		result := &model.ReturnResult{LoanID: key}

		parsed, err := uuid.Parse(bookID)
		if err != nil {
			logOrphanReturn(key, bookID)
			return result, nil
		}

		book, err := scanLenderBook(tx.QueryRow(ctx,
			`UPDATE books SET quantity = quantity + 1 WHERE id = $1 RETURNING `+lenderBookColumns,
			parsed.String(),
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				logOrphanReturn(key, bookID)
				return result, nil
			}
			return nil, fmt.Errorf("increment quantity: %w", err)
		}

		result.Book = book
		return result, nil
	})
}

func logOrphanReturn(loanID, bookID string) {
	logger.Warn("Returned loan references a missing book", map[string]interface{}{
		"loan_id": loanID,
		"book_id": bookID,
	})
}
