package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/statesearch/pkg/solver"
)

var (
	walkBoardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 2)
	walkGoalStyle = walkBoardStyle.BorderForeground(colorGreen)
	walkDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// WalkModel - Step through a solution path
// =============================================================================

// WalkModel is the bubbletea model for stepping through a solution path.
type WalkModel struct {
	Result *solver.Result
	Cursor int
}

// NewWalkModel creates a walker positioned at the start board.
func NewWalkModel(res *solver.Result) WalkModel {
	return WalkModel{Result: res}
}

func (m WalkModel) Init() tea.Cmd {
	return nil
}

func (m WalkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	last := len(m.Result.Steps) - 1
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n", " ":
		if m.Cursor < last {
			m.Cursor++
		}
	case "left", "h", "p":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = max(last, 0)
	}
	return m, nil
}

func (m WalkModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Result.Title))
	b.WriteString("\n")
	b.WriteString(walkDimStyle.Render("←/→ step  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Result.Steps) == 0 {
		b.WriteString(StyleWarning.Render("no path: " + m.Result.Status))
		b.WriteString("\n")
		return b.String()
	}

	step := m.Result.Steps[m.Cursor]
	style := walkBoardStyle
	if m.Cursor == len(m.Result.Steps)-1 {
		style = walkGoalStyle
	}
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("move %d/%d", m.Cursor, m.Result.Moves())))
	b.WriteString("  ")
	b.WriteString(walkDimStyle.Render(stepHeader(step)))
	b.WriteString("\n")
	b.WriteString(style.Render(step.Render))
	b.WriteString("\n\n")
	b.WriteString(progressBar(m.Cursor, m.Result.Moves(), 30))
	b.WriteString("\n")

	return b.String()
}

// progressBar draws pos out of total as a bar of width cells.
func progressBar(pos, total, width int) string {
	filled := width
	if total > 0 {
		filled = pos * width / total
	}
	return StyleSuccess.Render(strings.Repeat("━", filled)) + walkDimStyle.Render(strings.Repeat("━", width-filled))
}
