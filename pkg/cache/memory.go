package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize is the entry capacity used when none is configured.
const DefaultMemorySize = 1024

// DefaultMemoryMaxAge bounds how long any entry stays in a [MemoryCache]
// when no maximum age is configured.
const DefaultMemoryMaxAge = TTLLevels

// MemoryCache is a bounded in-process cache. Least recently used entries are
// evicted once size is reached, and entries older than the cache's maximum
// age are purged in the background. A shorter TTL passed to Set is checked
// on read.
type MemoryCache struct {
	entries *expirable.LRU[string, entry]
}

// NewMemoryCache creates an LRU cache holding at most size entries, none of
// them for longer than maxAge. Zero or negative values select
// [DefaultMemorySize] and [DefaultMemoryMaxAge].
func NewMemoryCache(size int, maxAge time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultMemorySize
	}
	if maxAge <= 0 {
		maxAge = DefaultMemoryMaxAge
	}
	return &MemoryCache{entries: expirable.NewLRU[string, entry](size, nil, maxAge)}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a copy of data in the cache. A ttl longer than the cache's
// maximum age is cut short by it.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.entries.Add(key, newEntry(append([]byte(nil), data...), ttl))
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Len returns the number of stored entries. Entries past their own TTL but
// within the maximum age are counted until read.
func (c *MemoryCache) Len() int { return c.entries.Len() }

// Close purges all entries.
func (c *MemoryCache) Close() error {
	c.entries.Purge()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
