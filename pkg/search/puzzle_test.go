package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/statesearch/pkg/puzzle/slidingtile"
	"github.com/matzehuels/statesearch/pkg/puzzle/tictactoe"
	"github.com/matzehuels/statesearch/pkg/search"
)

// nineMoves needs nine moves to reach the ordered board.
var nineMoves = slidingtile.MustParse("2,4,3,7,1,6,5,_,8")

// twoMoves needs two moves: the blank slides right twice.
var twoMoves = slidingtile.MustParse("1,2,3,4,5,6,_,7,8")

func TestSlidingTileShortestPaths(t *testing.T) {
	tests := []struct {
		strategy search.Strategy
		start    slidingtile.Board
		wantLen  int
	}{
		{search.BreadthFirst, nineMoves, 9},
		{search.AStar, nineMoves, 9},
		{search.BranchAndBound, nineMoves, 9},
		{search.BestFirst, nineMoves, 9},
		{search.DepthLimited, nineMoves, 9},
		{search.DepthFirst, twoMoves, 2},
		{search.HillClimbing, twoMoves, 2},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			res := search.Solve(tt.strategy, tt.start, slidingtile.Goal())
			if !res.Solved() {
				t.Fatalf("Status = %v, want found", res.Status)
			}
			if res.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", res.Len(), tt.wantLen)
			}
			checkAdjacent(t, res.States())
			if last := res.States()[res.Len()]; !last.Matches(slidingtile.Goal()) {
				t.Errorf("terminal %s does not match goal", last.Compact())
			}
		})
	}
}

// checkAdjacent verifies every step swaps the blank with one neighbour.
func checkAdjacent(t *testing.T, states []slidingtile.Board) {
	t.Helper()
	if states[0] != nineMoves && states[0] != twoMoves {
		t.Errorf("path starts at %s", states[0].Compact())
	}
	for i := 1; i < len(states); i++ {
		found := false
		for _, s := range states[i-1].Successors() {
			if s == states[i] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("step %d: %s is not a successor of %s", i, states[i].Compact(), states[i-1].Compact())
		}
	}
}

func TestAStarExpandsLeast(t *testing.T) {
	astar := search.Solve(search.AStar, nineMoves, slidingtile.Goal())
	bfs := search.Solve(search.BreadthFirst, nineMoves, slidingtile.Goal())
	if astar.Stats.Expanded >= bfs.Stats.Expanded {
		t.Errorf("A* expanded %d, BFS %d; want A* fewer", astar.Stats.Expanded, bfs.Stats.Expanded)
	}
	if astar.Len() > bfs.Len() {
		t.Errorf("A* Len() = %d, BFS Len() = %d", astar.Len(), bfs.Len())
	}
}

func TestDepthLimitedRespectsLimit(t *testing.T) {
	e := search.New[slidingtile.Board](search.DepthLimited, search.WithDepthLimit(8))
	e.SetStart(nineMoves)
	e.SetGoal(slidingtile.Goal())
	res := e.Search()
	if res.Status != search.Exhausted {
		t.Fatalf("Status = %v, want exhausted", res.Status)
	}
	for _, n := range res.Tree() {
		if n.Depth > 8 {
			t.Fatalf("node #%d at depth %d exceeds limit", n.ID, n.Depth)
		}
	}

	e.SetDepthLimit(10)
	res = e.Search()
	if !res.Solved() || res.Len() > 10 {
		t.Errorf("limit 10: Status = %v, Len() = %d", res.Status, res.Len())
	}
}

func TestSearchIsRepeatable(t *testing.T) {
	e := search.New[slidingtile.Board](search.BreadthFirst)
	e.SetStart(twoMoves)
	e.SetGoal(slidingtile.Goal())
	a, b := e.Search().States(), e.Search().States()
	if len(a) != len(b) {
		t.Fatalf("len = %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("step %d differs: %s vs %s", i, a[i].Compact(), b[i].Compact())
		}
	}
}

func TestWildcardGoal(t *testing.T) {
	goal := slidingtile.MustParse("1,2,3,?,?,?,?,?,?")
	res := search.Solve(search.AStar, nineMoves, goal)
	if !res.Solved() {
		t.Fatalf("Status = %v, want found", res.Status)
	}
	last := res.States()[res.Len()]
	if c := last.Cells(); c[0] != 1 || c[1] != 2 || c[2] != 3 {
		t.Errorf("terminal %s does not start with 1,2,3", last.Compact())
	}
}

func TestDeadlineStopsDepthFirst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	e := search.New[slidingtile.Board](search.DepthFirst, search.WithObserver(func(search.Meta) {
		if n++; n == 500 {
			cancel()
		}
	}))
	e.SetStart(nineMoves)
	e.SetGoal(slidingtile.Goal())
	res, err := e.SearchContext(ctx)
	if !errors.Is(err, context.Canceled) || res.Status != search.Cancelled {
		t.Errorf("err = %v, Status = %v; want cancelled", err, res.Status)
	}
}

func TestTicTacToeWildcardGoal(t *testing.T) {
	start := tictactoe.MustParse("X,O,X,_,O,_,_,_,_", tictactoe.X)
	// Any board with O in the middle column wins.
	goal := tictactoe.MustParse("?,O,?,?,O,?,?,O,?", tictactoe.X)

	res := search.Solve(search.BreadthFirst, start, goal)
	if !res.Solved() {
		t.Fatalf("Status = %v, want found", res.Status)
	}
	// X moves first, so O needs two plies.
	if res.Len() != 2 {
		t.Errorf("Len() = %d, want 2", res.Len())
	}
	last := res.States()[res.Len()]
	if last.Winner() != tictactoe.O {
		t.Errorf("Winner() = %q, want O", last.Winner())
	}
}
