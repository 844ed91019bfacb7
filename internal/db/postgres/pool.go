// Package postgres opens the employee directory database.
package postgres

import (
	"context"
	_ "embed"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/hrsearch/internal/db"
)

//go:embed schema.sql
var schema string

// Config holds pool parameters.
type Config struct {
	DSN      string
	MaxConns int32
}

// NewPool creates a pgx connection pool. It does not wait for the server;
// call WaitForReady before first use.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, &db.Error{Op: "CONNECT", Err: err}
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pcfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, &db.Error{Op: "CONNECT", Err: err}
	}
	return pool, nil
}

// Execer runs a statement without returning rows.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, conn Execer) error {
	if _, err := conn.Exec(ctx, schema); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}

// WaitForReady pings the pool with backoff until the server answers.
func WaitForReady(ctx context.Context, p *pgxpool.Pool, timeout time.Duration) error {
	return db.WaitForReady(ctx, timeout, p.Ping)
}
