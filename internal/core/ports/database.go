// internal/core/ports/database.go
package ports

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the Postgres handle shared by the motorcycle repository, the
// health checks and motoctl. Pool exposes pgx directly for transactions.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Pool() *pgxpool.Pool

	Ping(ctx context.Context) error
	// Health returns pool statistics keyed for the /health response
	Health(ctx context.Context) map[string]any
	Close()
}
