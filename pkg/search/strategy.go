package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned by [ParseStrategy] for unrecognised names.
var ErrUnknownStrategy = errors.New("unknown search strategy")

// Strategy selects the frontier discipline of an [Engine].
type Strategy int

const (
	// BreadthFirst expands nodes level by level (FIFO).
	BreadthFirst Strategy = iota
	// DepthFirst follows the most recently generated branch (LIFO).
	DepthFirst
	// DepthLimited is DepthFirst that refuses to expand nodes at the limit.
	DepthLimited
	// BestFirst queues each batch of successors in ascending heuristic order.
	BestFirst
	// BranchAndBound queues each batch of successors in ascending cost order.
	BranchAndBound
	// AStar always expands the open node with the lowest cost plus heuristic.
	AStar
	// HillClimbing stacks successors so the lowest heuristic is expanded next.
	HillClimbing
)

// DefaultDepthLimit is the depth bound used by [DepthLimited] unless
// overridden with [WithDepthLimit] or [Engine.SetDepthLimit].
const DefaultDepthLimit = 10

var strategyInfo = []struct {
	key     string
	title   string
	aliases []string
}{
	BreadthFirst:   {"breadth-first", "Breadth-First Search", []string{"bfs", "breadth"}},
	DepthFirst:     {"depth-first", "Depth-First Search", []string{"dfs", "depth"}},
	DepthLimited:   {"depth-limited", "Depth-Limited Search", []string{"dls", "limited"}},
	BestFirst:      {"best-first", "Best-First Search", []string{"greedy", "best"}},
	BranchAndBound: {"branch-and-bound", "Branch-and-Bound", []string{"bnb", "uniform-cost", "ucs"}},
	AStar:          {"astar", "A* Search", []string{"a*", "a-star"}},
	HillClimbing:   {"hill-climbing", "Hill-Climbing", []string{"hill", "hc"}},
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategyInfo))
	for i := range strategyInfo {
		out[i] = Strategy(i)
	}
	return out
}

func (s Strategy) valid() bool { return s >= 0 && int(s) < len(strategyInfo) }

// String returns the canonical key, e.g. "breadth-first" or "astar".
func (s Strategy) String() string {
	if !s.valid() {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyInfo[s].key
}

// Title returns a human-readable name such as "Breadth-First Search".
func (s Strategy) Title() string {
	if !s.valid() {
		return s.String()
	}
	return strategyInfo[s].title
}

// Informed reports whether the strategy orders nodes using heuristic values.
func (s Strategy) Informed() bool {
	switch s {
	case BestFirst, AStar, HillClimbing:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStrategy resolves a canonical key or an alias ("bfs", "a*", "ucs", ...).
// Matching ignores case and surrounding whitespace.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, info := range strategyInfo {
		if n == info.key {
			return Strategy(i), nil
		}
		for _, a := range info.aliases {
			if n == a {
				return Strategy(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
