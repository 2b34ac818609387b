// Package interfaces defines the capability contracts used throughout the
// pipeline. These interfaces allow for dependency injection and make the
// core packages testable without network or filesystem access.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for page-cache operations. Implementations
// can be in-memory, SQLite, or Redis; the fetch layer treats them all the
// same way.
//
// Example usage:
//
//	// Store a fetched page
//	err := cache.Set(ctx, "page:https://artist.bandcamp.com/music", body, 6*time.Hour)
//
//	// Look it up on the next run
//	data, err := cache.Get(ctx, "page:https://artist.bandcamp.com/music")
//	if err != nil {
//		// miss: go to the network
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
