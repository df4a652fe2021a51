package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/pkg/history"
)

// historyCommand creates the run history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newHistory(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				printInfo(c.Out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(c.Out, historyTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "number of runs to list")

	return cmd
}

// historyShowCommand creates the "history show" subcommand.
func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newHistory(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if errors.Is(err, history.ErrNotFound) {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err != nil {
				return err
			}
			printRecord(c, rec)
			return nil
		},
	}
}

func historyTable(runs []history.Record) string {
	headers := []string{"Run", "When", "Domain", "Strategy", "Start", "Status", "Moves", "Expanded"}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		moves := "—"
		if r.Found {
			moves = strconv.Itoa(r.PathLength)
		}
		rows[i] = []string{
			shortID(r.ID),
			r.CreatedAt.Local().Format("Jan 2 15:04"),
			r.Domain, r.Strategy, cells(r.Start), r.Status, moves,
			strconv.Itoa(r.Expanded),
		}
	}
	return renderTable(headers, rows, func(row int) bool {
		return row < len(runs) && runs[row].Found
	})
}

func printRecord(c *CLI, r history.Record) {
	printKeyValue(c.Out, "Run", r.ID)
	printKeyValue(c.Out, "When", r.CreatedAt.Local().Format(time.RFC1123))
	printKeyValue(c.Out, "Domain", r.Domain)
	printKeyValue(c.Out, "Strategy", r.Strategy)
	printKeyValue(c.Out, "Start", r.Start)
	printKeyValue(c.Out, "Goal", r.Goal)
	printKeyValue(c.Out, "Status", r.Status)
	if r.Found {
		printKeyValue(c.Out, "Moves", strconv.Itoa(r.PathLength))
		printKeyValue(c.Out, "Cost", strconv.Itoa(r.Cost))
	}
	printKeyValue(c.Out, "Expanded", strconv.Itoa(r.Expanded))
	printKeyValue(c.Out, "Generated", strconv.Itoa(r.Generated))
	printKeyValue(c.Out, "Duration", (time.Duration(r.DurationMS) * time.Millisecond).String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
