package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist. Backend
// failures are returned as distinct errors and must not be folded into it.
var ErrNotFound = errors.New("store: key not found")

// Store is the key-value backend used by the scoring collaborators.
type Store interface {
	// CacheGet returns a cached value. Misses, expired entries and backend
	// failures all report ok=false; the caller recomputes.
	CacheGet(ctx context.Context, key string) (value string, ok bool)

	// CacheSet stores a value with a TTL, best-effort. Failures are ignored.
	CacheSet(ctx context.Context, key, value string, ttl time.Duration)

	// Get returns a persistent value or ErrNotFound. Backend failures
	// propagate to the caller.
	Get(ctx context.Context, key string) (string, error)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		return "", false
	}
	return e.value, true
}

// CacheGet implements Store.
func (s *MemoryStore) CacheGet(_ context.Context, key string) (string, bool) {
	return s.lookup(key)
}

// CacheSet implements Store.
func (s *MemoryStore) CacheSet(_ context.Context, key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.lookup(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores a persistent value. Used to seed test and dev fixtures.
func (s *MemoryStore) Set(key, value string) {
	s.CacheSet(context.Background(), key, value, 0)
}
