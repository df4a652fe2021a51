package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/pkg/search"
)

// strategiesCommand creates the strategies command.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available search strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := search.Strategies()
			rows := make([][]string, len(all))
			for i, s := range all {
				informed := "no"
				if s.Informed() {
					informed = "yes"
				}
				rows[i] = []string{s.String(), s.Title(), informed}
			}
			fmt.Fprintln(c.Out, renderTable([]string{"Name", "Strategy", "Heuristic"}, rows, nil))
			return nil
		},
	}
}
