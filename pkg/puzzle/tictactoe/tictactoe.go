// Package tictactoe models tic-tac-toe move sequences as a search domain.
//
// Every successor fills one empty cell with the symbol of the player to
// move, so each branch is at most nine moves deep and the space is finite.
// Goals may contain [Wildcard] cells, which match anything; searching for
// "X,X,X,?,?,?,?,?,?" finds a move sequence that gives X the top row.
package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/statesearch/pkg/puzzle"
)

// Cell values.
const (
	Empty    byte = ' '
	X        byte = 'X'
	O        byte = 'O'
	Wildcard byte = '?'
)

// ErrInvalidBoard is wrapped by every board construction error.
var ErrInvalidBoard = errors.New("invalid tic-tac-toe board")

// Board is one position plus the symbol that moves next.
type Board struct {
	cells  [puzzle.Cells]byte
	toMove byte
}

// New validates cells and returns a board with toMove to play. toMove must
// be X or O.
func New(cells [puzzle.Cells]byte, toMove byte) (Board, error) {
	for i, c := range cells {
		switch c {
		case Empty, X, O, Wildcard:
		default:
			return Board{}, fmt.Errorf("%w: cell %d has value %q", ErrInvalidBoard, i, c)
		}
	}
	if toMove != X && toMove != O {
		return Board{}, fmt.Errorf("%w: player %q must be X or O", ErrInvalidBoard, toMove)
	}
	return Board{cells: cells, toMove: toMove}, nil
}

// Parse reads nine cells such as "X,O,_,_,X,_,_,_,O". "_" or a space is an
// empty cell, "?" a wildcard; x and o are accepted in either case.
func Parse(text string, toMove byte) (Board, error) {
	parts, err := puzzle.SplitCells(text)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrInvalidBoard, err)
	}
	var cells [puzzle.Cells]byte
	for i, p := range parts {
		switch strings.ToUpper(p) {
		case "_", " ", ".":
			cells[i] = Empty
		case "X":
			cells[i] = X
		case "O":
			cells[i] = O
		case "?":
			cells[i] = Wildcard
		default:
			return Board{}, fmt.Errorf("%w: cell %d: %q", ErrInvalidBoard, i, p)
		}
	}
	return New(cells, toMove)
}

// ParsePlayer resolves "X" or "O" in either case. An empty name is X.
func ParsePlayer(name string) (byte, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "X":
		return X, nil
	case "O":
		return O, nil
	}
	return 0, fmt.Errorf("%w: player %q must be X or O", ErrInvalidBoard, name)
}

// MustParse is like Parse but panics on error.
func MustParse(text string, toMove byte) Board {
	b, err := Parse(text, toMove)
	if err != nil {
		panic(err)
	}
	return b
}

// NewGame returns the empty board with X to move.
func NewGame() Board {
	var b Board
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.toMove = X
	return b
}

// ToMove returns the symbol of the player to move.
func (b Board) ToMove() byte { return b.toMove }

// Cells returns a copy of the cell values.
func (b Board) Cells() [puzzle.Cells]byte { return b.cells }

// Successors returns one board per empty cell, scanning row by row, with the
// mover's symbol placed and the turn passed to the other player.
func (b Board) Successors() []Board {
	next := other(b.toMove)
	var out []Board
	for i, c := range b.cells {
		if c != Empty {
			continue
		}
		n := b
		n.cells[i] = b.toMove
		n.toMove = next
		out = append(out, n)
	}
	return out
}

// Matches compares cells only; wildcard cells of goal match anything. Whose
// turn it is does not matter.
func (b Board) Matches(goal Board) bool {
	for i, g := range goal.cells {
		if g != Wildcard && g != b.cells[i] {
			return false
		}
	}
	return true
}

// Heuristic is always zero; heuristic strategies degrade to blind search.
func (b Board) Heuristic(Board) int { return 0 }

var lines = [...][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns X or O when that symbol holds a full line, otherwise 0.
func (b Board) Winner() byte {
	for _, l := range lines {
		c := b.cells[l[0]]
		if (c == X || c == O) && c == b.cells[l[1]] && c == b.cells[l[2]] {
			return c
		}
	}
	return 0
}

// Full reports whether no empty cell is left.
func (b Board) Full() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}

// Compact returns the board as "X,O,_,...".
func (b Board) Compact() string {
	parts := make([]string, len(b.cells))
	for i, c := range b.cells {
		if c == Empty {
			parts[i] = "_"
		} else {
			parts[i] = string(c)
		}
	}
	return strings.Join(parts, ",")
}

// String draws the board with grid lines.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < puzzle.Side; r++ {
		if r > 0 {
			sb.WriteString("---+---+---\n")
		}
		i := r * puzzle.Side
		fmt.Fprintf(&sb, " %c | %c | %c\n", b.cells[i], b.cells[i+1], b.cells[i+2])
	}
	return strings.TrimRight(sb.String(), "\n")
}

// MarshalText implements encoding.TextMarshaler using Compact.
func (b Board) MarshalText() ([]byte, error) { return []byte(b.Compact()), nil }

func other(p byte) byte {
	if p == O {
		return X
	}
	return O
}
