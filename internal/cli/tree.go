package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/pkg/render/tree"
)

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		problem  problemFlags
		stores   storeFlags
		format   string
		output   string
		limit    int
		grid     bool
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Export the search tree as Graphviz DOT or SVG",
		Long: `Tree runs a search and exports the nodes it generated. The solution path is
highlighted. Large trees are cut to --limit nodes; the path is always kept.`,
		Example: `  statesearch tree -s bfs --start 1,2,3,4,5,6,_,7,8 -o bfs.svg
  statesearch tree -s astar --start 2,4,3,7,1,6,5,_,8 --format dot | dot -Tpng > astar.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			if format == "" {
				format = "svg"
				if output == "" {
					format = "dot"
				}
			}
			if format != "dot" && format != "svg" {
				return fmt.Errorf("unknown format %q: want dot or svg", format)
			}

			opts, err := problem.options(cmd)
			if err != nil {
				return err
			}
			opts.Tree = true
			opts.TreeLimit = limit

			runner, err := c.newRunner(cmd.Context(), stores)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Solve(cmd.Context(), opts)
			if res == nil {
				return err
			}
			if err != nil {
				printWarning(os.Stderr, "exporting partial tree: %v", err)
			}
			if res.TreeTruncated {
				logger.Warn("tree truncated", "nodes", len(res.Tree), "generated", res.Stats.Generated+1)
			}

			data := []byte(tree.ToDOT(res.Tree, tree.Options{Title: res.Title, Grid: grid, Detailed: detailed}))
			if format == "svg" {
				prog := newProgress(logger)
				if data, err = tree.RenderSVG(cmd.Context(), string(data)); err != nil {
					return err
				}
				prog.done("Rendered SVG", "nodes", len(res.Tree))
			}

			if output == "" {
				_, err = c.Out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess(c.Out, "Exported %d nodes", len(res.Tree))
			printFile(c.Out, output)
			return nil
		},
	}

	problem.register(cmd, true)
	stores.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot or svg (default svg with -o, dot otherwise)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum exported nodes (default 1000)")
	cmd.Flags().BoolVar(&grid, "grid", true, "draw boards as three rows")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show node IDs and g/h/f values")

	return cmd
}
