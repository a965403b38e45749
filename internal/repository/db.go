package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS faq_entries (
		id         TEXT PRIMARY KEY,
		position   INTEGER NOT NULL,
		question   TEXT NOT NULL,
		variations TEXT[] NOT NULL DEFAULT '{}',
		keywords   TEXT[] NOT NULL DEFAULT '{}',
		answer     TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT 'general'
	)`,
	`CREATE INDEX IF NOT EXISTS faq_entries_position_idx ON faq_entries (position)`,
	`CREATE TABLE IF NOT EXISTS unmatched_queries (
		id          UUID PRIMARY KEY,
		question    TEXT NOT NULL,
		category    TEXT NOT NULL,
		suggestions TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS unmatched_queries_created_at_idx ON unmatched_queries (created_at DESC)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
