// Package cache stores solved problems so repeated requests skip the search.
//
// A [Cache] is a byte-oriented key/value store with per-entry expiry. Three
// backends are provided:
//
//   - [NullCache]: stores nothing, used when caching is disabled
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the API server
//
// Keys are built by a [Keyer] from every option that can change a result,
// so two requests share an entry only when they would produce the same
// answer.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long solutions are kept. Searches are deterministic, so
// the limit only bounds disk and memory use.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is implemented by every backend. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
