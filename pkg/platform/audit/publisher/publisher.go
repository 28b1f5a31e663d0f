// Package publisher emits audit events to a Store, synchronously by
// default or through a buffered channel when async mode is enabled.
// Audit here is operational, not fail-closed: a failed append never
// blocks the business operation that produced it.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	audit "cyberins/pkg/platform/audit"
)

// Publisher writes audit events to a store.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	inbox chan audit.Event
	done  chan struct{}
	once  sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous emission through a channel of the
// given capacity. Close drains the channel before returning.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// WithLogger sets a logger for append failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher over the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, done: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		go p.run()
	}
	return p
}

// Emit records an event. In async mode a full buffer falls back to a
// synchronous append rather than dropping the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.inbox == nil {
		return p.append(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		return p.append(ctx, event)
	}
}

// List returns the events recorded for a key when the backing store
// keeps them queryable; sink-only stores return nothing.
func (p *Publisher) List(ctx context.Context, key string) ([]audit.Event, error) {
	lister, ok := p.store.(interface {
		ListByKey(ctx context.Context, key string) ([]audit.Event, error)
	})
	if !ok {
		return nil, nil
	}
	return lister.ListByKey(ctx, key)
}

// Close drains any buffered events and stops the worker.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			<-p.done
		}
	})
}

func (p *Publisher) run() {
	defer close(p.done)
	for event := range p.inbox {
		_ = p.append(context.Background(), event)
	}
}

func (p *Publisher) append(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit append failed",
				"action", event.Action,
				"key", event.Key,
				"error", err,
			)
		}
		return err
	}
	return nil
}
