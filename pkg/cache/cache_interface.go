package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Keeping it behind an interface allows swapping the backing store
// (Redis, in-memory) and mocking in tests.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// Returns (found, error):
	//   found = true:  cache hit, dest populated
	//   found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error

	// Close releases the underlying client.
	Close() error
}
