package cache

import (
	"context"
	"time"
)

// Store is the key-value cache contract used by the fetch orchestrator.
//
// Implementations degrade rather than fail: when the backing store is
// unreachable, Get reports a miss, writes and deletes become no-ops, and
// pattern operations return empty results. The orchestrator must never
// fail solely because the cache is down.
type Store interface {
	// Get returns the value for key, or nil on miss. A nil value with a
	// nil error also covers store-unreachable.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetWithTTL stores value under key with the given expiry.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys matching a glob-style pattern (* and ?).
	Keys(ctx context.Context, pattern string) ([]string, error)

	// DeleteMatching removes all keys matching a glob-style pattern and
	// returns how many were removed.
	DeleteMatching(ctx context.Context, pattern string) (int, error)

	// Healthy reports the last-known connection state.
	Healthy() bool
}
