package search

import "fmt"

// Meta is the bookkeeping attached to every node of the search tree.
type Meta struct {
	ID        int // engine-assigned, increasing, diagnostics only
	Depth     int // transitions from the root
	Parent    int // arena index of the parent, -1 for the root
	Cost      int // accumulated path cost g
	Heuristic int // estimate h
	Eval      int // strategy-defined evaluation f
}

// IsRoot reports whether the node has no parent.
func (m Meta) IsRoot() bool { return m.Parent < 0 }

// String returns a one-line summary such as "node #12 depth 3 g=3 h=4 f=7".
func (m Meta) String() string {
	return fmt.Sprintf("node #%d depth %d g=%d h=%d f=%d", m.ID, m.Depth, m.Cost, m.Heuristic, m.Eval)
}

// Node is a state together with its position in the search tree.
type Node[S any] struct {
	Meta
	State S
}

// tree is the arena holding every node generated during one run.
// Parent links are indices into nodes.
type tree[S any] struct {
	nodes []Node[S]
}

func (t *tree[S]) add(n Node[S]) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree[S]) at(i int) Node[S] { return t.nodes[i] }
