package usecase

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reelworks/reelgate/internal/domain/model"
)

// memStore is an in-memory cache.Store. TTLs are recorded but not enforced;
// tests expire entries by deleting them directly.
type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	gets int
	sets int
}

func newMemStore() *memStore {
	return &memStore{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	return s.entries[key], nil
}

func (s *memStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.entries[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	delete(s.ttls, key)
	return nil
}

func (s *memStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k := range s.entries {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *memStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	keys, _ := s.Keys(ctx, pattern)
	for _, k := range keys {
		_ = s.Delete(ctx, k)
	}
	return len(keys), nil
}

func (s *memStore) Healthy() bool { return true }

// expire drops a key as if its TTL elapsed.
func (s *memStore) expire(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	delete(s.ttls, key)
}

func (s *memStore) ttlOf(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttls[key]
}

// nilStore reports misses for everything; writes vanish. Stands in for a
// degraded cache.
type nilStore struct{}

func (nilStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }
func (nilStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (nilStore) Delete(ctx context.Context, key string) error                 { return nil }
func (nilStore) Keys(ctx context.Context, pattern string) ([]string, error)   { return nil, nil }
func (nilStore) DeleteMatching(ctx context.Context, pattern string) (int, error) {
	return 0, nil
}
func (nilStore) Healthy() bool { return false }

// mockUpstream provides a configurable mock for Upstream with a call counter.
type mockUpstream struct {
	calls atomic.Int32
	getFn func(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
}

func (m *mockUpstream) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	m.calls.Add(1)
	if m.getFn != nil {
		return m.getFn(ctx, path, params)
	}
	return json.RawMessage(`{}`), nil
}

// mockAnalytics provides a configurable mock for SearchAnalyticsRepository.
type mockAnalytics struct {
	mu       sync.Mutex
	inserted []*model.SearchAnalyticsRecord
	insertFn func(ctx context.Context, rec *model.SearchAnalyticsRecord) error
}

func (m *mockAnalytics) Insert(ctx context.Context, rec *model.SearchAnalyticsRecord) error {
	m.mu.Lock()
	m.inserted = append(m.inserted, rec)
	m.mu.Unlock()
	if m.insertFn != nil {
		return m.insertFn(ctx, rec)
	}
	return nil
}

func (m *mockAnalytics) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inserted)
}
