// Package cli implements the trophic command-line interface.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trophic/pkg/buildinfo"
	"github.com/matzehuels/trophic/pkg/cache"
	"github.com/matzehuels/trophic/pkg/errors"
	graphio "github.com/matzehuels/trophic/pkg/io"
	"github.com/matzehuels/trophic/pkg/network"
	"github.com/matzehuels/trophic/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "trophic"

	// configFile is the file looked up in the config directory when
	// --config is not given.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Trophic computes trophic levels of directed networks",
		Long: `Trophic computes the trophic level of every node in a directed network and
rewrites node x coordinates so that lower levels sit to the left.

Graphs are read from JSON or YAML documents. Results and rendered diagrams
are cached locally for faster subsequent runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/trophic/config.toml)")

	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig overlays the config file on the defaults. A missing default
// file is not an error; a missing explicit one is.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, configFile)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, c.Config.Cache.Keyer(), c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// openCache opens the configured backend. The file backend falls back to
// the XDG cache directory when no directory is configured.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	if (cfg.Backend == "" || cfg.Backend == cache.BackendFile) && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		cfg.Backend = cache.BackendFile
		cfg.Dir = dir
	}
	return cache.Open(ctx, cfg)
}

// options returns leveling options seeded from the configuration.
func (c *CLI) options() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Precision = c.Config.Precision
	if c.Config.RowStep > 0 {
		opts.RowStep = c.Config.RowStep
	}
	if c.Config.MaxNodes != 0 {
		opts.MaxNodes = c.Config.MaxNodes
	}
	opts.Logger = c.Logger
	return opts
}

// loadGraph reads the graph document at path, classifying failures as
// FILE_NOT_FOUND or INVALID_INPUT.
func loadGraph(path string) (*network.Network, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	g, err := graphio.ImportFile(path)
	switch {
	case err == nil:
		return g, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file not found")
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load graph %s", path)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/trophic/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/trophic/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// derivePath replaces the extension of input with suffix+ext, e.g.
// derivePath("web.yaml", ".levels", "") is "web.levels.yaml".
// An empty ext keeps the input's extension.
func derivePath(input, suffix, ext string) string {
	orig := filepath.Ext(input)
	if ext == "" {
		ext = orig
		if ext == "" {
			ext = ".json"
		}
	}
	return strings.TrimSuffix(input, orig) + suffix + ext
}
