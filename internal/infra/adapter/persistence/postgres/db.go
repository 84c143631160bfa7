package postgres

import (
	"context"
	"database/sql"
)

// DB is the subset of database/sql methods the repositories use.
// Both *sql.DB and the resilience circuit breaker wrapper satisfy it,
// so callers choose whether queries run behind breaker protection.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
