// Package cache provides an optional Redis read cache for record
// snapshots. The ledger stays the source of truth: every mutation
// invalidates the key, and cache failures degrade to a ledger read.
package cache

import (
	"context"
	"log/slog"
	"time"

	platformredis "cyberins/internal/platform/redis"
)

const keyPrefix = "cyberins:record:"

// RecordCache caches canonical record bytes by ledger key.
type RecordCache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New wraps a redis client. A nil client yields a nil cache, which every
// method tolerates, so wiring stays unconditional.
func New(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *RecordCache {
	if client == nil {
		return nil
	}
	return &RecordCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached bytes for key, or ok=false on miss or error.
func (c *RecordCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores the bytes for key with the configured TTL.
func (c *RecordCache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

// Invalidate drops the cached value for key.
func (c *RecordCache) Invalidate(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "cache invalidate failed", "key", key, "error", err)
	}
}
