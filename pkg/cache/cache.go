// Package cache stores computed isomer counts and partition listings so the
// CLI and HTTP server do not repeat exact big-integer work.
//
// The cache sits entirely outside the counting core: the rooted-tree memo in
// pkg/isomers is per call and never consults it. Values are opaque bytes
// (the service layer stores JSON) addressed by keys built with a [Keyer].
//
// Backends:
//   - [FileCache] for the CLI, under the XDG cache directory
//   - [RedisCache] for shared deployments of the HTTP server
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired or
	// corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Default TTLs. Counts are exact and never change, so they live long; the
// bound exists only to let stale formats age out after upgrades.
const (
	TTLCount      = 30 * 24 * time.Hour
	TTLPartitions = 7 * 24 * time.Hour
)

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
