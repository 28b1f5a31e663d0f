// Package postgres persists the ledger in PostgreSQL: a ledger_state
// table holding the current whole-value snapshot per key and an
// append-only ledger_history table recording every write and tombstone.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cyberins/internal/ledger"
	"cyberins/pkg/platform/sentinel"
	"cyberins/pkg/requestcontext"
)

// Store is a pgx-backed ledger.Store.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a PostgreSQL-backed ledger store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM ledger_state WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	if len(value) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return value, nil
}

// Put replaces the current value and appends a history row in one
// transaction so state and history cannot diverge.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.writeVersion(ctx, key, value, false)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.writeVersion(ctx, key, nil, true)
}

func (s *Store) writeVersion(ctx context.Context, key string, value []byte, deleted bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if deleted {
		if _, err := tx.Exec(ctx, `DELETE FROM ledger_state WHERE key = $1`, key); err != nil {
			return fmt.Errorf("delete %q: %w", key, err)
		}
	} else {
		_, err := tx.Exec(ctx,
			`INSERT INTO ledger_state (key, value) VALUES ($1, $2)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			key, value)
		if err != nil {
			return fmt.Errorf("put %q: %w", key, err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO ledger_history (key, tx_id, ts, value, deleted)
		 VALUES ($1, $2, $3, $4, $5)`,
		key, uuid.NewString(), requestcontext.Now(ctx), value, deleted)
	if err != nil {
		return fmt.Errorf("append history for %q: %w", key, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %q: %w", key, err)
	}
	return nil
}

func (s *Store) Scan(ctx context.Context, start, end string) ([]ledger.Entry, error) {
	query := `SELECT key, value FROM ledger_state WHERE key >= $1`
	args := []any{start}
	if end != "" {
		query += ` AND key < $2`
		args = append(args, end)
	}
	query += ` ORDER BY key`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scan [%q, %q): %w", start, end, err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var entry ledger.Entry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) History(ctx context.Context, key string) ([]ledger.Version, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT tx_id, ts, value, deleted FROM ledger_history
		 WHERE key = $1 ORDER BY seq`, key)
	if err != nil {
		return nil, fmt.Errorf("history %q: %w", key, err)
	}
	defer rows.Close()

	var versions []ledger.Version
	for rows.Next() {
		var v ledger.Version
		if err := rows.Scan(&v.TxID, &v.Timestamp, &v.Value, &v.Deleted); err != nil {
			return nil, fmt.Errorf("history row: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
