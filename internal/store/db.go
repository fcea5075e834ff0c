package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database access layer. It is implemented by both
// *sql.DB and *sql.Tx, allowing store code to run the same queries on
// a plain connection or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
