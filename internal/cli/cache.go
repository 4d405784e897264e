package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trophic/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached levels and rendered diagrams",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	store, err := c.openCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	switch s := store.(type) {
	case *cache.FileCache:
		if err := s.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		printSuccess("Cache cleared")
		printDetail("Directory: %s", s.Dir())
	case *cache.RedisCache:
		if err := s.Clear(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		printSuccess("Cache cleared")
		printDetail("Redis keys under %q", cache.DefaultRedisPrefix)
	default:
		printInfo("Nothing to clear for the %s backend", cacheLabel(c.Config.Cache.Backend, false))
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := c.Config.Cache.Dir
			if dir == "" {
				var err error
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
