package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the key/value port shared by the result caches.
// Implemented by RedisAdapter and MemoryAdapter.
type Cache interface {
	// Get returns the stored value, or an error wrapping ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Ping checks if the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend.
	Close() error
}
