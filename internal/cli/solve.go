package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/solver"
)

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		problem problemFlags
		stores  storeFlags
		asJSON  bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for a path from a start board to a goal",
		Long: `Solve runs one search and prints every board on the path it found.

Boards are nine comma-separated cells read row by row. Sliding-tile boards
use 1-8 and _ for the blank; tic-tac-toe boards use X, O and _. Goals may use
? for cells that match anything.`,
		Example: `  statesearch solve --start 2,4,3,7,1,6,5,_,8
  statesearch solve -s bfs --start 1,2,3,4,5,6,_,7,8
  statesearch solve -d tictactoe --start X,O,X,_,O,_,_,_,_ --goal ?,O,?,?,O,?,?,O,? --player O
  statesearch solve --problem puzzle.toml --strategy dls --depth-limit 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := problem.options(cmd)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), stores)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := c.solve(cmd, runner, opts, !asJSON && !quiet)
			if res != nil {
				if asJSON {
					enc := json.NewEncoder(c.Out)
					enc.SetIndent("", "  ")
					if jerr := enc.Encode(res); jerr != nil {
						return jerr
					}
				} else {
					if !quiet {
						printPath(c.Out, res)
					}
					printSummary(c.Out, res)
				}
			}
			return err
		},
	}

	problem.register(cmd, true)
	stores.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")

	return cmd
}

// solve runs one search behind a spinner when interactive is set.
func (c *CLI) solve(cmd *cobra.Command, runner *solver.Runner, opts solver.Options, interactive bool) (*solver.Result, error) {
	if !interactive {
		return runner.Solve(cmd.Context(), opts)
	}
	s := newSpinner(cmd.Context(), os.Stderr, "Searching...")
	s.Start()
	res, err := runner.Solve(cmd.Context(), opts)
	s.Stop()
	if err != nil && res != nil && (errs.Is(err, errs.ErrCodeTimeout) || errs.Is(err, errs.ErrCodeLimitExceeded)) {
		printWarning(c.Out, "%s", errs.UserMessage(err))
	}
	return res, err
}
