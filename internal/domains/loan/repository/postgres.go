package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookocean-backend/internal/domains/loan/model"
)

const loanColumns = `id::text, book_id, email, borrow_date, return_date`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - loans table, book_id là TEXT không có FK
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func parseUUID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", model.NewInvalidLoanIDError(id)
	}
	return parsed.String(), nil
}

func scanLoan(row pgx.Row) (*model.Loan, error) {
	var l model.Loan
	if err := row.Scan(&l.ID, &l.BookID, &l.Email, &l.BorrowDate, &l.ReturnDate); err != nil {
		return nil, err
	}
	l.BorrowDate = l.BorrowDate.UTC()
	l.ReturnDate = l.ReturnDate.UTC()
	return &l, nil
}

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// insertLoan is shared with the transactional lender
func insertLoan(ctx context.Context, q queryRower, loan *model.Loan) (*model.Loan, error) {
	query := `
		INSERT INTO loans (id, book_id, email, borrow_date, return_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + loanColumns

	created, err := scanLoan(q.QueryRow(ctx, query,
		uuid.NewString(),
		loan.BookID,
		loan.Email,
		loan.BorrowDate,
		loan.ReturnDate,
	))
	if err != nil {
		return nil, fmt.Errorf("insert loan: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	return insertLoan(ctx, r.pool, loan)
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Loan, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	loan, err := scanLoan(r.pool.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLoanNotFoundError(id)
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return loan, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	key, err := parseUUID(id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM loans WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewLoanNotFoundError(id)
	}
	return nil
}

func (r *postgresRepository) ListByEmail(ctx context.Context, email string) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+loanColumns+` FROM loans WHERE email = $1 ORDER BY seq`, email)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	loans := make([]model.Loan, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return loans, nil
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
