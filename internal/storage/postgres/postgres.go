// Package postgres stores arena battles in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arena/internal/config"
)

// ApplicationName identifies arena connections in pg_stat_activity.
const ApplicationName = "arena"

// ErrSchemaMissing is returned by Health when the battles table has not been
// created. Run cmd/migrate against the database first.
var ErrSchemaMissing = errors.New("battles table missing; run migrations")

// Pool is the connection pool shared by the battle repository.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the configured database and verifies it answers.
//
// Precondition: cfg passes config validation.
// Postcondition: Returns a connected Pool or a non-nil error. The schema is
// not checked; call Health for that.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = ApplicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	return &Pool{pool: pool}, nil
}

// Health reports whether battles can be stored: the database must answer
// within timeout and the battles table must exist.
//
// Postcondition: Returns ErrSchemaMissing when migrations have not been applied.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var present bool
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('battles') IS NOT NULL`).Scan(&present); err != nil {
		return fmt.Errorf("checking battle schema: %w", err)
	}
	if !present {
		return ErrSchemaMissing
	}
	return nil
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for use by repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// isDuplicateKeyError reports a unique_violation (SQLSTATE 23505).
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
