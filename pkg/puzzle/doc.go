// Package puzzle groups the board domains shipped with statesearch.
//
// Each subpackage provides a comparable Board type that satisfies
// search.State[Board]:
//
//   - [slidingtile]: the 8-puzzle, with Manhattan and misplaced-tile heuristics.
//   - [tictactoe]: tic-tac-toe move sequences, with wildcard goal cells.
//
// Boards are written as nine comma-separated cells, row by row. A blank is
// "_" (or a space), a wildcard goal cell is "?".
//
// [slidingtile]: github.com/matzehuels/statesearch/pkg/puzzle/slidingtile
// [tictactoe]: github.com/matzehuels/statesearch/pkg/puzzle/tictactoe
package puzzle

import (
	"fmt"
	"strings"
)

// Cells is the number of cells on a 3x3 board.
const Cells = 9

// Side is the number of rows and columns.
const Side = 3

// SplitCells splits board text into exactly nine trimmed cells. Commas
// separate cells; when the text has no commas every rune is one cell, so
// "_23146758" and "_,2,3,1,4,6,7,5,8" are equivalent. Row separators "|" or
// "/" and newlines are ignored in the comma form.
func SplitCells(text string) ([]string, error) {
	var cells []string
	if strings.Contains(text, ",") {
		r := strings.NewReplacer("|", ",", "/", ",", "\n", ",")
		for _, c := range strings.Split(r.Replace(text), ",") {
			if c == "" {
				continue
			}
			if t := strings.TrimSpace(c); t != "" {
				c = t
			} else {
				c = " "
			}
			cells = append(cells, c)
		}
	} else {
		for _, r := range text {
			if r == '|' || r == '/' || r == '\n' {
				continue
			}
			cells = append(cells, string(r))
		}
	}
	if len(cells) != Cells {
		return nil, fmt.Errorf("board needs %d cells, got %d", Cells, len(cells))
	}
	return cells, nil
}
