package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/reelworks/reelgate/internal/infrastructure/metrics"
)

// RedisStore implements Store on top of a Redis connection.
//
// Every operation absorbs transport errors: they are logged and counted,
// and the operation reports a miss or no-op instead. Reconnection is left
// to go-redis (bounded retries with capped backoff, configured by the
// composition root); the healthy flag tracks the last operation outcome
// and the connection lifecycle hook.
type RedisStore struct {
	client  *redis.Client
	healthy atomic.Bool
}

// RedisConfig holds connection settings for the Redis client.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// MaxRetries bounds per-command retries; backoff grows from
	// MinRetryBackoff and is capped at MaxRetryBackoff.
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

// DefaultRedisConfig returns connection settings with the standard retry
// envelope (up to 3 retries, 50ms..2s backoff).
func DefaultRedisConfig(addr string) RedisConfig {
	return RedisConfig{
		Addr:            addr,
		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
	}
}

// NewRedisStore builds a store with its own Redis client, wired to flip
// the health flag whenever a connection is (re-)established.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	s := &RedisStore{}
	s.healthy.Store(true)
	s.client = redis.NewClient(&redis.Options{
		Addr:            cfg.Addr,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			s.healthy.Store(true)
			return nil
		},
	})
	return s
}

// NewRedisStoreWithClient wraps an existing Redis client. Used by tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	s := &RedisStore{client: client}
	s.healthy.Store(true)
	return s
}

// Ping verifies the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get returns the cached value, or nil on miss or unreachable store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.healthy.Store(true)
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			return nil, nil
		}
		s.degrade("get", key, err)
		return nil, nil
	}

	s.healthy.Store(true)
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return data, nil
}

// SetWithTTL stores the value; a failed write is absorbed.
func (s *RedisStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.degrade("set", key, err)
		return nil
	}

	s.healthy.Store(true)
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return nil
}

// Delete removes a key; a failed delete is absorbed.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.degrade("delete", key, err)
		return nil
	}

	s.healthy.Store(true)
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return nil
}

// Keys returns all keys matching the glob pattern, empty on unreachability.
func (s *RedisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.degrade("scan", pattern, err)
		return nil, nil
	}

	s.healthy.Store(true)
	return keys, nil
}

// DeleteMatching removes all keys matching the glob pattern and returns
// how many were removed. No-op on unreachability.
func (s *RedisStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	keys, err := s.Keys(ctx, pattern)
	if err != nil || len(keys) == 0 {
		return 0, nil
	}

	removed, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		s.degrade("delete", pattern, err)
		return 0, nil
	}

	s.healthy.Store(true)
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return int(removed), nil
}

// Healthy reports the last-known connection state.
func (s *RedisStore) Healthy() bool {
	return s.healthy.Load()
}

// degrade records a transport failure and marks the store unhealthy.
// Context cancellation is the caller's problem, not a store outage.
func (s *RedisStore) degrade(op, key string, err error) {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.healthy.Store(false)
	}
	metrics.CacheOperationsTotal.WithLabelValues(op, metrics.CacheStatusError).Inc()
	slog.Warn("cache operation degraded to no-op",
		slog.String("operation", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// Compile-time verification that RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
