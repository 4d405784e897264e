// Package cache provides content-addressed caching for leveling results and
// rendered artifacts.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries on disk, for CLI use
//   - [MemoryCache]: bounded in-process LRU, for a single server instance
//   - [RedisCache]: shared cache for multi-instance deployments
//
// [Open] selects a backend from a [Config].
//
// # Keys
//
// Keys are built by a [Keyer] from the SHA-256 [Hash] of the canonical graph
// document plus every option that changes the result. [ScopedKeyer] prefixes
// all keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	TTLLevels   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LevelsKeyOpts holds the options that affect a leveling result.
type LevelsKeyOpts struct {
	Precision int     `json:"precision"`
	Rows      bool    `json:"rows,omitempty"`
	RowStep   float64 `json:"row_step,omitempty"`
}

// ArtifactKeyOpts holds the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Detailed  bool    `json:"detailed,omitempty"`
	ColorRows bool    `json:"color_rows,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LevelsKey keys the leveled network for a graph hash.
	LevelsKey(graphHash string, opts LevelsKeyOpts) string

	// ArtifactKey keys a rendered artifact for a leveled-graph hash.
	ArtifactKey(levelsHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LevelsKey returns "levels:<sha256>".
func (DefaultKeyer) LevelsKey(graphHash string, opts LevelsKeyOpts) string {
	return hashKey("levels", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(levelsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", levelsHash, opts)
}
