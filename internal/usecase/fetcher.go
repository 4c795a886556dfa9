package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/reelworks/reelgate/internal/infrastructure/cache"
	"github.com/reelworks/reelgate/internal/infrastructure/metrics"
)

// staleTTLFactor controls how much longer the shadow copy of each entry
// outlives the primary. The shadow exists purely for stale serving when
// the upstream is down; TTL expiry removes the primary long before the
// shadow, so "serve stale on failure" has something to find.
const staleTTLFactor = 6

// stalePrefix namespaces the shadow copies.
const stalePrefix = "stale:"

// FetchFunc produces fresh bytes for a cache key, typically an upstream
// call plus post-processing.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Fetcher is the cache-first fetch orchestrator shared by all domain
// operations: cache read, upstream on miss, write-back with TTL, and
// stale fallback when the upstream fails.
//
// Concurrent misses on the same key are collapsed into a single upstream
// call via singleflight; upstream reads are idempotent, so this is an
// efficiency measure, not a correctness requirement.
type Fetcher struct {
	store   cache.Store
	sfGroup singleflight.Group
}

// NewFetcher creates a Fetcher over the given store.
func NewFetcher(store cache.Store) *Fetcher {
	return &Fetcher{store: store}
}

// Fetch returns the cached value for key, or invokes fn and caches the
// result with the given TTL. When fn fails, a previously cached value is
// served instead if any survives: first the primary key (a concurrent
// fetch may have written it after our miss), then the longer-lived shadow
// copy. The error propagates only when neither exists.
//
// Cache failures never surface here; the store degrades them to misses
// and no-ops internally.
func (f *Fetcher) Fetch(ctx context.Context, key string, ttl time.Duration, fn FetchFunc) ([]byte, error) {
	if data, _ := f.store.Get(ctx, key); data != nil {
		metrics.FetchesTotal.WithLabelValues(metrics.FetchResultCacheHit).Inc()
		return data, nil
	}

	// The collapsed fetch may serve several waiters, so it must not die
	// with whichever caller happened to initiate it.
	sfCtx := context.WithoutCancel(ctx)
	result, err, shared := f.sfGroup.Do(key, func() (any, error) {
		data, err := fn(sfCtx)
		if err != nil {
			return nil, err
		}

		_ = f.store.SetWithTTL(sfCtx, key, data, ttl)
		_ = f.store.SetWithTTL(sfCtx, stalePrefix+key, data, ttl*staleTTLFactor)
		return data, nil
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return f.fallback(ctx, key, err)
	}

	metrics.FetchesTotal.WithLabelValues(metrics.FetchResultUpstream).Inc()
	return result.([]byte), nil
}

// fallback attempts to serve an existing cache entry after an upstream
// failure, preferring a fresh concurrent write over the stale shadow.
func (f *Fetcher) fallback(ctx context.Context, key string, fetchErr error) ([]byte, error) {
	if data, _ := f.store.Get(ctx, key); data != nil {
		metrics.FetchesTotal.WithLabelValues(metrics.FetchResultStalePrimary).Inc()
		return data, nil
	}

	if data, _ := f.store.Get(ctx, stalePrefix+key); data != nil {
		metrics.FetchesTotal.WithLabelValues(metrics.FetchResultStaleShadow).Inc()
		slog.Warn("serving stale cache entry after upstream failure",
			slog.String("key", key),
			slog.String("error", fetchErr.Error()),
		)
		return data, nil
	}

	metrics.FetchesTotal.WithLabelValues(metrics.FetchResultError).Inc()
	return nil, fetchErr
}

// FetchJSON wraps Fetcher.Fetch with JSON encoding, so domain services
// work with typed values while the cache stores serialized entries. An
// undecodable cached entry is treated as a miss: both copies are dropped
// and the value is fetched fresh, so one bad write cannot poison a key
// until TTL expiry.
func FetchJSON[T any](ctx context.Context, f *Fetcher, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	fetch := func(ctx context.Context) ([]byte, error) {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}

	data, err := f.Fetch(ctx, key, ttl, fetch)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}

	slog.Warn("dropping undecodable cache entry", slog.String("key", key))
	_ = f.store.Delete(ctx, key)
	_ = f.store.Delete(ctx, stalePrefix+key)

	data, err = f.Fetch(ctx, key, ttl, fetch)
	if err != nil {
		return zero, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("decode fetched entry: %w", err)
	}
	return out, nil
}
