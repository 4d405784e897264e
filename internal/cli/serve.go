package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trophic/internal/server"
	"github.com/matzehuels/trophic/pkg/observability"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the leveling API over HTTP",
		Long: `Serve the leveling API over HTTP.

Routes:
  POST /v1/levels   graph document in, leveled nodes and heights out
  POST /v1/render   graph document in, node-link diagram out
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus metrics (disable with --no-metrics)

Query parameters on the POST routes override the configured defaults:
precision, rows, row_step, refresh, and for render format, detailed,
color_rows and scale.

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not collect or expose metrics")

	return cmd
}

// runServe wires the runner, metrics and server and blocks until ctx ends.
func (c *CLI) runServe(ctx context.Context, noCache, withMetrics bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var metrics *observability.Metrics
	if withMetrics {
		metrics = observability.NewMetrics()
		observability.SetPipelineHooks(metrics)
		observability.SetCacheHooks(metrics)
		observability.SetHTTPHooks(metrics)
		defer observability.Reset()
	}

	opts := c.options()
	cfg := c.Config.Server
	cfg.Options = &opts
	if cfg.Addr == "" {
		cfg.Addr = server.DefaultAddr
	}
	srv := server.New(runner, metrics, c.Logger, cfg)

	printSuccess("Serving trophic API")
	printKeyValue("Address", cfg.Addr)
	printKeyValue("Cache", cacheLabel(c.Config.Cache.Backend, noCache))
	printKeyValue("Metrics", fmt.Sprintf("%t", withMetrics))

	return srv.ListenAndServe(ctx)
}

func cacheLabel(backend string, disabled bool) string {
	switch {
	case disabled:
		return "disabled"
	case backend == "":
		return "file"
	default:
		return backend
	}
}
