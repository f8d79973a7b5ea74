package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryAdapter implements Cache in process memory.
// There is no janitor goroutine: expired entries are swept on every Set.
type MemoryAdapter struct {
	store *gocache.Cache
}

// NewMemoryAdapter creates an empty in-memory cache.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{store: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns a copy of the stored value.
func (m *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}
	b := v.([]byte)
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Set sweeps expired entries, then stores a copy of value.
func (m *MemoryAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.store.DeleteExpired()

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	b := make([]byte, len(value))
	copy(b, value)
	m.store.Set(key, b, ttl)
	return nil
}

// Delete removes a value by key.
func (m *MemoryAdapter) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Ping always succeeds.
func (m *MemoryAdapter) Ping(context.Context) error {
	return nil
}

// Close drops every entry.
func (m *MemoryAdapter) Close() error {
	m.store.Flush()
	return nil
}

// Len reports the number of stored entries, expired ones included until the next sweep.
func (m *MemoryAdapter) Len() int {
	return m.store.ItemCount()
}
