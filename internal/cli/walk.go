package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// walkCommand creates the walk command.
func (c *CLI) walkCommand() *cobra.Command {
	var (
		problem problemFlags
		stores  storeFlags
	)

	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Solve a problem and step through the path interactively",
		Example: `  statesearch walk --start 2,4,3,7,1,6,5,_,8
  statesearch walk --problem puzzle.toml`,
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

			res, err := c.solve(cmd, runner, opts, true)
			if err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("%s found no path: %s", res.Title, res.Status)
			}

			p := tea.NewProgram(NewWalkModel(res), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("walk: %w", err)
			}
			return nil
		},
	}

	problem.register(cmd, true)
	stores.register(cmd)

	return cmd
}
