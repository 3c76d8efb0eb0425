// Package cache stores rendered artifacts keyed by content hash.
//
// Rasterizing through rsvg-convert or headless Chrome is the slowest step of
// an image export. The CLI keeps the resulting bytes in a [FileCache] under
// the user cache directory so re-rendering an unchanged diagram with the same
// options is a file read. Library callers that do not want caching pass a
// [NullCache].
//
// Keys come from a [Keyer]. The default keyer hashes the SVG input together
// with every option that changes the output; [ScopedKeyer] adds a prefix so
// separate tools can share one directory.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour
