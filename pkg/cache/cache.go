// Package cache stores license classification results between scans.
//
// Classifying a license text means running an external scanner process, so
// results are cached by the SHA-256 of the text. Backends:
//   - [FileCache]: one JSON file per entry, for local CLI use
//   - [MemoryCache]: bounded in-process LRU
//   - [RedisCache]: shared cache for CI fleets
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is the lifetime of a cached license classification.
const DefaultTTL = 30 * 24 * time.Hour
