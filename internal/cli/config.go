package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trophic/internal/server"
	"github.com/matzehuels/trophic/pkg/cache"
	"github.com/matzehuels/trophic/pkg/errors"
	"github.com/matzehuels/trophic/pkg/pipeline"
)

// Config is the on-disk CLI configuration.
//
//	precision = 3
//	row_step  = 1.0
//
//	[cache]
//	backend   = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl       = "24h"
//
//	[server]
//	addr = ":9090"
type Config struct {
	Precision int     `toml:"precision"`
	RowStep   float64 `toml:"row_step"`
	MaxNodes  int     `toml:"max_nodes"`

	Cache  cache.Config  `toml:"cache"`
	Server server.Config `toml:"server"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Precision: pipeline.DefaultPrecision,
		RowStep:   pipeline.DefaultRowStep,
		MaxNodes:  pipeline.DefaultMaxNodes,
		Server:    server.Config{Addr: server.DefaultAddr},
	}
}

// LoadConfig decodes the TOML file at path over DefaultConfig.
// Unknown keys are rejected so that typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and the cache backend name.
func (c Config) Validate() error {
	if err := errors.ValidatePrecision(c.Precision); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "precision")
	}
	if c.RowStep < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "row_step must be positive, got %g", c.RowStep)
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendMemory, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// String renders the effective configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return b.String()
}

// configCommand creates the "config" command that prints the effective
// configuration.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), c.Config.String())
			return err
		},
	}
}
