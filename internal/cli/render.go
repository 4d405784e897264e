package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trophic/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		precision int
		rows      bool
	)
	ropts := pipeline.RenderOptions{}
	ropts.SetDefaults()

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a leveled graph as a node-link diagram",
		Long: `Render a leveled graph as a node-link diagram.

The render command computes trophic levels like 'levels' and then draws the
graph with every node pinned at its leveled (x, y) position. Supported
formats are svg (default), dot, png and pdf. PNG and PDF output require
rsvg-convert on PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(ropts.Format); err != nil {
				return err
			}
			opts := c.options()
			if cmd.Flags().Changed("precision") {
				opts.Precision = precision
			}
			opts.Rows = rows || ropts.ColorRows
			opts.Refresh = ropts.Refresh
			return c.runRender(cmd.Context(), args[0], opts, ropts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&ropts.Format, "format", "f", ropts.Format, "output format: svg, dot, png, pdf")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&ropts.Refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().IntVar(&precision, "precision", pipeline.DefaultPrecision, "decimal places heights are rounded to")
	cmd.Flags().BoolVar(&rows, "rows", false, "assign rows from quantized levels")
	cmd.Flags().BoolVar(&ropts.Detailed, "detailed", false, "include level and metadata in node labels")
	cmd.Flags().BoolVar(&ropts.ColorRows, "color-rows", false, "fill nodes by row (implies --rows)")
	cmd.Flags().Float64Var(&ropts.Scale, "scale", ropts.Scale, "coordinate scale factor")

	return cmd
}

// runRender levels the graph and renders the result to a file.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, ropts pipeline.RenderOptions, output string, noCache bool) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Level(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", ropts.Format))
	spinner.Start()
	data, cacheHit, err := runner.Render(ctx, res.Network, ropts)
	if err := finishRender(spinner, ropts.Format, err); err != nil {
		return err
	}

	if output == "" {
		output = derivePath(input, "", "."+ropts.Format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, cacheHit)
	printFile(output)
	return nil
}

// finishRender stops the spinner according to how the render ended. A render
// cut short by cancellation is reported as interrupted rather than failed.
func finishRender(spinner *Spinner, format string, err error) error {
	switch {
	case err == nil:
		spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", format))
		return nil
	case spinner.Cancelled():
		spinner.Stop()
		printWarning("Render interrupted")
		return fmt.Errorf("render interrupted: %w", err)
	default:
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
}
