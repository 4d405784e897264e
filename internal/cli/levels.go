package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/trophic/pkg/io"
	"github.com/matzehuels/trophic/pkg/pipeline"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// levelsCommand creates the levels command.
func (c *CLI) levelsCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		refresh   bool
		rows      bool
		precision int
		rowStep   float64
	)

	cmd := &cobra.Command{
		Use:   "levels [graph.json]",
		Short: "Compute trophic levels and rewrite node x coordinates",
		Long: `Compute trophic levels and rewrite node x coordinates.

The levels command reads a graph document (JSON or YAML), solves for the
trophic level of every node and rescales the levels onto the range of the
input x coordinates. The leveled graph is written next to the input as
<name>.levels.<ext> unless -o is given; "-o -" writes JSON to stdout.

With --rows each node is also assigned the row round(level / row-step).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			if cmd.Flags().Changed("precision") {
				opts.Precision = precision
			}
			if cmd.Flags().Changed("row-step") {
				opts.RowStep = rowStep
			}
			opts.Rows = rows
			opts.Refresh = refresh
			return c.runLevels(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.levels.<ext>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().IntVar(&precision, "precision", pipeline.DefaultPrecision, "decimal places heights are rounded to")
	cmd.Flags().BoolVar(&rows, "rows", false, "assign each node a row from its quantized level")
	cmd.Flags().Float64Var(&rowStep, "row-step", pipeline.DefaultRowStep, "level span of one row")

	return cmd
}

// runLevels loads the graph, levels it and writes the result.
func (c *CLI) runLevels(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	g, err := loadGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Level(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	prog.done(fmt.Sprintf("Leveled %d nodes", res.Stats.Leveled))

	if output == stdoutPath {
		return graphio.WriteJSON(res.Network, os.Stdout)
	}
	if output == "" {
		output = derivePath(input, ".levels", "")
	}
	if err := graphio.ExportFile(res.Network, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Trophic levels computed")
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Cached)
	printFile(output)
	if res.Stats.Isolated > 0 {
		printWarning("%d isolated node(s) kept their coordinates", res.Stats.Isolated)
	}
	printNewline()
	fmt.Println(levelsTable(res, opts.Rows))
	printNewline()
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, input))
	return nil
}
