package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/statesearch/pkg/solver"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBoard  = lipgloss.NewStyle().Foreground(colorWhite).PaddingLeft(2)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Search Output
// =============================================================================

// stepHeader is the metadata line printed above each board.
func stepHeader(s solver.Step) string {
	return fmt.Sprintf("node #%d depth %d g=%d h=%d f=%d", s.NodeID, s.Depth, s.Cost, s.Heuristic, s.Eval)
}

// printPath prints every step of res, root first.
func printPath(w io.Writer, res *solver.Result) {
	for i, s := range res.Steps {
		label := fmt.Sprintf("step %d/%d", i, res.Moves())
		fmt.Fprintln(w, StyleHighlight.Render(label)+"  "+StyleDim.Render(stepHeader(s)))
		fmt.Fprintln(w, styleBoard.Render(s.Render))
	}
}

// printStats prints search statistics on a single line.
func printStats(w io.Writer, res *solver.Result) {
	parts := []string{
		fmt.Sprintf("%d expanded", res.Stats.Expanded),
		fmt.Sprintf("%d generated", res.Stats.Generated),
		fmt.Sprintf("frontier %d", res.Stats.MaxFrontier),
		res.Duration.Round(10 * time.Microsecond).String(),
	}

	status := iconFresh
	statusStyle := styleComputed
	if res.Cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// printSummary prints the outcome line of a solve.
func printSummary(w io.Writer, res *solver.Result) {
	if res.Found {
		printSuccess(w, "%s found a path of %d moves (cost %d)", res.Title, res.Moves(), res.Cost)
	} else {
		printWarning(w, "%s stopped: %s", res.Title, res.Status)
	}
	printStats(w, res)
	printDetail(w, "run %s", res.RunID)
}

// =============================================================================
// Tables
// =============================================================================

// renderTable draws a rounded table with dim borders and bold headers.
// highlight marks rows drawn in green.
func renderTable(headers []string, rows [][]string, highlight func(row int) bool) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			switch {
			case row == -1: // header
				return base.Inherit(styleHeader)
			case highlight != nil && highlight(row):
				return base.Foreground(colorGreen)
			}
			return base
		})
	return t.Render()
}

// cells is a short board representation for tables.
func cells(compact string) string {
	return strings.ReplaceAll(compact, ",", "")
}
