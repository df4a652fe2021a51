// Package slidingtile implements the 8-puzzle as a search domain.
//
// A [Board] holds tiles 1 to 8 and one blank on a 3x3 grid. Successors slide
// the blank up, down, left or right. The goal test treats [Wildcard] cells of
// the goal as matching any tile, so partial goals such as "1,2,3,?,?,?,?,?,?"
// are allowed.
//
// The space contains cycles (moving the blank back and forth revisits boards),
// so unlimited depth-first style strategies are not guaranteed to terminate.
package slidingtile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/statesearch/pkg/puzzle"
)

const (
	// Blank is the cell value of the empty square.
	Blank byte = 0
	// Wildcard is a goal cell that matches any value.
	Wildcard byte = 0xFF
)

// ErrInvalidBoard is wrapped by every board construction error.
var ErrInvalidBoard = errors.New("invalid sliding-tile board")

// Metric selects the heuristic estimate.
type Metric uint8

const (
	// Manhattan sums the grid distance of every tile to its goal cell.
	Manhattan Metric = iota
	// Misplaced counts tiles not on their goal cell.
	Misplaced
)

func (m Metric) String() string {
	if m == Misplaced {
		return "misplaced"
	}
	return "manhattan"
}

// ParseMetric resolves "manhattan" or "misplaced". An empty name is Manhattan.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "manhattan":
		return Manhattan, nil
	case "misplaced", "hamming":
		return Misplaced, nil
	}
	return 0, fmt.Errorf("unknown heuristic %q", name)
}

// Board is one 8-puzzle configuration. The zero value is not a valid board.
type Board struct {
	cells  [puzzle.Cells]byte
	metric Metric
}

// New validates cells and returns a board using the Manhattan metric. Tiles
// 1 to 8 and the blank may each appear at most once; boards without
// wildcards must contain all of them.
func New(cells [puzzle.Cells]byte) (Board, error) {
	var seen [puzzle.Cells]bool
	wild := 0
	for i, c := range cells {
		switch {
		case c == Wildcard:
			wild++
		case int(c) >= puzzle.Cells:
			return Board{}, fmt.Errorf("%w: cell %d has value %d", ErrInvalidBoard, i, c)
		case seen[c]:
			return Board{}, fmt.Errorf("%w: %s appears twice", ErrInvalidBoard, cellText(c))
		default:
			seen[c] = true
		}
	}
	if wild == 0 && !seen[Blank] {
		return Board{}, fmt.Errorf("%w: no blank cell", ErrInvalidBoard)
	}
	return Board{cells: cells}, nil
}

// Parse reads nine cells such as "2,4,3,7,1,6,5,_,8". The blank is "_", "0"
// or a space; "?" is a wildcard.
func Parse(text string) (Board, error) {
	parts, err := puzzle.SplitCells(text)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	var cells [puzzle.Cells]byte
	for i, p := range parts {
		switch p {
		case "_", " ", "0":
			cells[i] = Blank
		case "?":
			cells[i] = Wildcard
		default:
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 || n > 8 {
				return Board{}, fmt.Errorf("%w: cell %d: %q is not a tile", ErrInvalidBoard, i, p)
			}
			cells[i] = byte(n)
		}
	}
	return New(cells)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level constants.
func MustParse(text string) Board {
	b, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return b
}

// Goal returns the ordered board 1..8 with the blank in the last cell.
func Goal() Board {
	return Board{cells: [puzzle.Cells]byte{1, 2, 3, 4, 5, 6, 7, 8, Blank}}
}

// WithMetric returns a copy of b estimating distance with m. Successors
// inherit the metric.
func (b Board) WithMetric(m Metric) Board {
	b.metric = m
	return b
}

// Metric returns the heuristic used by b.
func (b Board) Metric() Metric { return b.metric }

// Cells returns a copy of the cell values.
func (b Board) Cells() [puzzle.Cells]byte { return b.cells }

// At returns the value at row r, column c.
func (b Board) At(r, c int) byte { return b.cells[r*puzzle.Side+c] }

// BlankIndex returns the position of the blank, or -1 for goals whose blank
// is a wildcard.
func (b Board) BlankIndex() int { return b.index(Blank) }

func (b Board) index(v byte) int {
	for i, c := range b.cells {
		if c == v {
			return i
		}
	}
	return -1
}

// HasWildcards reports whether any cell is a Wildcard.
func (b Board) HasWildcards() bool { return b.index(Wildcard) >= 0 }

var moves = [...]struct{ dr, dc int }{
	{-1, 0}, // up
	{1, 0},  // down
	{0, -1}, // left
	{0, 1},  // right
}

// Successors slides the blank up, down, left and right, in that order for
// every blank position, skipping moves that leave the grid.
func (b Board) Successors() []Board {
	z := b.BlankIndex()
	if z < 0 {
		return nil
	}
	r, c := z/puzzle.Side, z%puzzle.Side
	out := make([]Board, 0, len(moves))
	for _, m := range moves {
		nr, nc := r+m.dr, c+m.dc
		if nr < 0 || nr >= puzzle.Side || nc < 0 || nc >= puzzle.Side {
			continue
		}
		n := b
		j := nr*puzzle.Side + nc
		n.cells[z], n.cells[j] = n.cells[j], n.cells[z]
		out = append(out, n)
	}
	return out
}

// Matches reports whether every non-wildcard cell of goal equals b.
func (b Board) Matches(goal Board) bool {
	for i, g := range goal.cells {
		if g != Wildcard && g != b.cells[i] {
			return false
		}
	}
	return true
}

// Heuristic estimates the number of moves left. Tiles whose goal position is
// unknown (wildcard) contribute nothing, which keeps both metrics admissible.
func (b Board) Heuristic(goal Board) int {
	h := 0
	for i, t := range b.cells {
		if t == Blank || t == Wildcard {
			continue
		}
		switch b.metric {
		case Misplaced:
			if g := goal.cells[i]; g != Wildcard && g != t {
				h++
			}
		default:
			j := goal.index(t)
			if j < 0 {
				continue
			}
			h += abs(i/puzzle.Side-j/puzzle.Side) + abs(i%puzzle.Side-j%puzzle.Side)
		}
	}
	return h
}

// Solvable reports whether goal is reachable from b. On a 3x3 board that
// holds when both have the same inversion parity. Goals with wildcards are
// always reported solvable.
func (b Board) Solvable(goal Board) bool {
	if goal.HasWildcards() || b.HasWildcards() {
		return true
	}
	return inversions(b)%2 == inversions(goal)%2
}

func inversions(b Board) int {
	n := 0
	for i := 0; i < len(b.cells); i++ {
		if b.cells[i] == Blank {
			continue
		}
		for j := i + 1; j < len(b.cells); j++ {
			if b.cells[j] != Blank && b.cells[j] < b.cells[i] {
				n++
			}
		}
	}
	return n
}

// Compact returns the board as "1,2,3,4,5,6,7,8,_".
func (b Board) Compact() string {
	parts := make([]string, len(b.cells))
	for i, c := range b.cells {
		parts[i] = cellText(c)
	}
	return strings.Join(parts, ",")
}

// String draws the board as a boxed grid.
func (b Board) String() string {
	const rule = "+---+---+---+"
	var sb strings.Builder
	sb.WriteString(rule)
	for r := 0; r < puzzle.Side; r++ {
		sb.WriteString("\n|")
		for c := 0; c < puzzle.Side; c++ {
			t := cellText(b.At(r, c))
			if t == "_" {
				t = " "
			}
			sb.WriteString(" " + t + " |")
		}
		sb.WriteString("\n" + rule)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler using Compact.
func (b Board) MarshalText() ([]byte, error) { return []byte(b.Compact()), nil }

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (b *Board) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = v.WithMetric(b.metric)
	return nil
}

func cellText(c byte) string {
	switch c {
	case Blank:
		return "_"
	case Wildcard:
		return "?"
	}
	return strconv.Itoa(int(c))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
