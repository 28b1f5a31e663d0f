package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied idempotently at startup. The state table holds the
// current whole-value snapshot per key; history is append-only and never
// updated or deleted by the engine.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_state (
	key   text PRIMARY KEY,
	value bytea NOT NULL
);

CREATE TABLE IF NOT EXISTS ledger_history (
	seq     bigserial PRIMARY KEY,
	key     text NOT NULL,
	tx_id   text NOT NULL,
	ts      timestamptz NOT NULL,
	value   bytea,
	deleted boolean NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS ledger_history_key_idx ON ledger_history (key, seq);
`

// Connect opens a pgx pool, verifies connectivity and ensures the ledger
// schema exists.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the ledger tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply ledger schema: %w", err)
	}
	return nil
}
