package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the two lending tables.
// loans.book_id is TEXT with no foreign key: a loan only weakly references its book,
// and loans whose book disappeared are dropped by the borrower view instead of failing.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id         UUID PRIMARY KEY,
		title      TEXT NOT NULL DEFAULT '',
		author     TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT '',
		image      TEXT NOT NULL DEFAULT '',
		quantity   INTEGER NOT NULL DEFAULT 0,
		rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		seq        BIGSERIAL
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id          UUID PRIMARY KEY,
		book_id     TEXT NOT NULL,
		email       TEXT NOT NULL,
		borrow_date TIMESTAMPTZ NOT NULL,
		return_date TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		seq         BIGSERIAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_email ON loans (email)`,
}

// EnsureSchema runs the idempotent DDL above
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
