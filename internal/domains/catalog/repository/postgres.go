package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bookocean-backend/internal/domains/catalog/model"
)

const bookColumns = `id::text, title, author, category, image, quantity, rating`

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func parseUUID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", model.NewInvalidBookIDError(id)
	}
	return parsed.String(), nil
}

// BuildBookWhere renders a filter as a WHERE clause with positional args
// starting at $startIndex. Column names are quoted even though they come
// from the filterable field whitelist.
func BuildBookWhere(filter model.BookFilter, startIndex int) (string, []interface{}) {
	if filter.IsEmpty() {
		return "", nil
	}

	conditions := make([]string, 0, len(filter.Conditions))
	args := make([]interface{}, 0, len(filter.Conditions))
	argIndex := startIndex

	for _, cond := range filter.Conditions {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(cond.Field), argIndex))
		args = append(args, cond.Value)
		argIndex++
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Image, &b.Quantity, &b.Rating)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ============================================
// CREATE / READ
// ============================================

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (id, title, author, category, image, quantity, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		book.Title,
		book.Author,
		book.Category,
		book.Image,
		book.Quantity,
		book.Rating,
	))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	where, args := BuildBookWhere(filter, 1)
	query := fmt.Sprintf(`SELECT %s FROM books %s ORDER BY seq`, bookColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) ListImages(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image FROM books ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]string, 0)
	for rows.Next() {
		var image string
		if err := rows.Scan(&image); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return images, nil
}

// ============================================
// WRITES
// ============================================

// Update only touches the row when some field actually differs, so
// RowsAffected doubles as the "modified" flag. A zero count is followed by
// an existence check to separate "unchanged" from "missing".
func (r *postgresRepository) Update(ctx context.Context, id string, book *model.Book) (*model.UpdateAck, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE books
		SET title = $2, author = $3, category = $4, image = $5, quantity = $6, rating = $7
		WHERE id = $1
		  AND (title, author, category, image, quantity, rating)
		      IS DISTINCT FROM ($2, $3, $4, $5, $6, $7)
	`
	tag, err := r.pool.Exec(ctx, query,
		key,
		book.Title,
		book.Author,
		book.Category,
		book.Image,
		book.Quantity,
		book.Rating,
	)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return &model.UpdateAck{ID: key, Matched: true, Modified: true}, nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, key).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check book exists: %w", err)
	}
	if !exists {
		return nil, model.NewBookNotFoundError(id)
	}
	return &model.UpdateAck{ID: key, Matched: true, Modified: false}, nil
}

func (r *postgresRepository) IncrementQuantity(ctx context.Context, id string, delta int) (*model.Book, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	query := `UPDATE books SET quantity = quantity + $2 WHERE id = $1 RETURNING ` + bookColumns

	book, err := scanBook(r.pool.QueryRow(ctx, query, key, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewBookNotFoundError(id)
		}
		return nil, fmt.Errorf("increment quantity: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) DecrementIfAvailable(ctx context.Context, id string) (*model.Book, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	query := `UPDATE books SET quantity = quantity - 1 WHERE id = $1 AND quantity > 0 RETURNING ` + bookColumns

	book, err := scanBook(r.pool.QueryRow(ctx, query, key))
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("decrement quantity: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, model.NewOutOfStockError(id)
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
