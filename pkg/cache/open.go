package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and parameterizes a cache backend.
type Config struct {
	Backend    string        `toml:"backend"`
	Dir        string        `toml:"dir"`
	RedisURL   string        `toml:"redis_url"`
	TTL        time.Duration `toml:"ttl"`
	MemorySize int           `toml:"memory_size"`
	KeyPrefix  string        `toml:"key_prefix"`
}

// Keyer returns the key generator for this configuration, scoped by
// KeyPrefix when one is set.
func (c Config) Keyer() Keyer {
	if c.KeyPrefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(nil, c.KeyPrefix)
}

// Open returns the backend named by cfg.Backend. An empty backend selects
// the file cache when a directory is configured and the null cache
// otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache requires a directory")
		}
		return NewFileCache(cfg.Dir)
	case BackendMemory:
		return NewMemoryCache(cfg.MemorySize, cfg.TTL), nil
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis cache requires redis_url")
		}
		return NewRedisCache(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
