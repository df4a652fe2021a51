package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/pkg/solver"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		problem    problemFlags
		stores     storeFlags
		strategies []string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Solve one problem with several strategies side by side",
		Long: `Compare runs the same problem with each strategy concurrently and prints a
table of path length, cost and effort. Strategies that run out of time or
expansion budget are listed with their partial effort.`,
		Example: `  statesearch compare --start 2,4,3,7,1,6,5,_,8
  statesearch compare --start 1,2,3,4,5,6,_,7,8 --strategies bfs,dfs,astar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			opts, err := problem.options(cmd)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), stores)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			results, err := runner.Compare(cmd.Context(), opts, strategies)
			if err != nil {
				return err
			}
			prog.done("Compared strategies", "count", len(results))

			fmt.Fprintln(c.Out, compareTable(results))
			return nil
		},
	}

	problem.register(cmd, false)
	stores.register(cmd)
	cmd.Flags().StringSliceVar(&strategies, "strategies", nil, "comma-separated strategies (default all)")

	return cmd
}

// compareTable renders one row per result. Rows reaching the shortest
// path found are highlighted.
func compareTable(results []*solver.Result) string {
	best := -1
	for _, r := range results {
		if r.Found && (best < 0 || r.Moves() < best) {
			best = r.Moves()
		}
	}

	headers := []string{"Strategy", "Status", "Moves", "Cost", "Expanded", "Generated", "Frontier", "Time"}
	rows := make([][]string, len(results))
	for i, r := range results {
		moves, cost := "—", "—"
		if r.Found {
			moves, cost = strconv.Itoa(r.Moves()), strconv.Itoa(r.Cost)
		}
		status := r.Status
		if r.Cached {
			status += " (" + iconCached + ")"
		}
		rows[i] = []string{
			r.Title, status, moves, cost,
			strconv.Itoa(r.Stats.Expanded),
			strconv.Itoa(r.Stats.Generated),
			strconv.Itoa(r.Stats.MaxFrontier),
			r.Duration.Round(10 * time.Microsecond).String(),
		}
	}
	return renderTable(headers, rows, func(row int) bool {
		return row < len(results) && results[row].Found && results[row].Moves() == best
	})
}
