// Package memory provides an in-memory ledger.Store used by unit tests
// and local development. It keeps the same version-log semantics as the
// durable store: every Put and Delete appends to a per-key history.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"cyberins/internal/ledger"
	"cyberins/pkg/platform/sentinel"
	"cyberins/pkg/requestcontext"
)

// InMemory is a mutex-guarded map-backed ledger.
type InMemory struct {
	mu      sync.RWMutex
	state   map[string][]byte
	history map[string][]ledger.Version
}

// NewInMemory constructs an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{
		state:   make(map[string][]byte),
		history: make(map[string][]ledger.Version),
	}
}

func (s *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.state[key]
	if !ok || len(value) == 0 {
		return nil, sentinel.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *InMemory) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.state[key] = stored
	s.history[key] = append(s.history[key], ledger.Version{
		TxID:      uuid.NewString(),
		Timestamp: requestcontext.Now(ctx),
		Value:     stored,
	})
	return nil
}

func (s *InMemory) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.state, key)
	s.history[key] = append(s.history[key], ledger.Version{
		TxID:      uuid.NewString(),
		Timestamp: requestcontext.Now(ctx),
		Deleted:   true,
	})
	return nil
}

func (s *InMemory) Scan(_ context.Context, start, end string) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.state))
	for key := range s.state {
		if key < start {
			continue
		}
		if end != "" && key >= end {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]ledger.Entry, 0, len(keys))
	for _, key := range keys {
		value := make([]byte, len(s.state[key]))
		copy(value, s.state[key])
		entries = append(entries, ledger.Entry{Key: key, Value: value})
	}
	return entries, nil
}

func (s *InMemory) History(_ context.Context, key string) ([]ledger.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions := s.history[key]
	out := make([]ledger.Version, len(versions))
	copy(out, versions)
	return out, nil
}
