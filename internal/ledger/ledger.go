// Package ledger defines the keyed, append-only record store the policy
// engine runs against. The host ledger supplies atomic whole-value
// read-modify-write per key; this package only fixes the contract the
// engine consumes and its sentinel semantics.
package ledger

import (
	"context"
	"time"
)

// Entry is one (key, value) pair observed by a range scan.
type Entry struct {
	Key   string
	Value []byte
}

// Version is one historical state of a key, oldest-first in History
// results. Deleted marks a tombstone; its Value is empty.
type Version struct {
	TxID      string
	Timestamp time.Time
	Value     []byte
	Deleted   bool
}

// Store is the ledger contract.
//
// Get returns sentinel.ErrNotFound when the key is absent or holds an
// empty value. Put replaces the whole value; partial updates do not
// exist. Scan iterates [start, end) in key order; empty bounds mean an
// open end on that side. History returns every prior version of the key
// including tombstones, oldest first.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Scan(ctx context.Context, start, end string) ([]Entry, error)
	History(ctx context.Context, key string) ([]Version, error)
}
