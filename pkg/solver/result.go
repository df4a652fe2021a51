package solver

import (
	"time"

	"github.com/matzehuels/statesearch/pkg/search"
)

// Step is one configuration on the solution path.
type Step struct {
	NodeID    int    `json:"node_id"`
	Depth     int    `json:"depth"`
	Cost      int    `json:"cost"`
	Heuristic int    `json:"heuristic"`
	Eval      int    `json:"eval"`
	Board     string `json:"board"`  // compact notation
	Render    string `json:"render"` // multi-line drawing
}

// TreeNode is one node of the exported search tree. Index and Parent refer
// to positions in Result.Tree.
type TreeNode struct {
	Index     int    `json:"index"`
	Parent    int    `json:"parent"`
	ID        int    `json:"id"`
	Depth     int    `json:"depth"`
	Cost      int    `json:"cost"`
	Heuristic int    `json:"heuristic"`
	Eval      int    `json:"eval"`
	Label     string `json:"label"`
	OnPath    bool   `json:"on_path,omitempty"`
}

// Stats mirrors search.Stats.
type Stats struct {
	Expanded    int `json:"expanded"`
	Generated   int `json:"generated"`
	MaxFrontier int `json:"max_frontier"`
}

// Result is the domain-agnostic outcome of a solve request.
type Result struct {
	RunID    string        `json:"run_id"`
	Domain   string        `json:"domain"`
	Strategy string        `json:"strategy"`
	Title    string        `json:"title"`
	Start    string        `json:"start"`
	Goal     string        `json:"goal"`
	Found    bool          `json:"found"`
	Status   string        `json:"status"`
	Steps    []Step        `json:"steps,omitempty"`
	Tree     []TreeNode    `json:"tree,omitempty"`
	Stats    Stats         `json:"stats"`
	Cost     int           `json:"cost"`
	Duration time.Duration `json:"duration_ns"`
	Cached   bool          `json:"cached"`

	// TreeTruncated is set when the exported tree omits nodes.
	TreeTruncated bool `json:"tree_truncated,omitempty"`
}

// Moves returns the number of transitions on the solution path.
func (r *Result) Moves() int {
	if len(r.Steps) == 0 {
		return 0
	}
	return len(r.Steps) - 1
}

// convert flattens a typed search result. label renders a state compactly.
func convert[S search.State[S]](res search.Result[S], label func(S) string, tree bool, treeLimit int) *Result {
	out := &Result{
		Found:  res.Solved(),
		Status: res.Status.String(),
		Cost:   res.Cost(),
		Stats: Stats{
			Expanded:    res.Stats.Expanded,
			Generated:   res.Stats.Generated,
			MaxFrontier: res.Stats.MaxFrontier,
		},
	}
	path := res.Path()
	for _, n := range path {
		out.Steps = append(out.Steps, Step{
			NodeID:    n.ID,
			Depth:     n.Depth,
			Cost:      n.Cost,
			Heuristic: n.Heuristic,
			Eval:      n.Eval,
			Board:     label(n.State),
			Render:    n.State.String(),
		})
	}
	if tree {
		out.Tree, out.TreeTruncated = exportTree(res.Tree(), path, label, treeLimit)
	}
	return out
}

// exportTree keeps the first limit arena nodes plus the solution path.
// Parents always precede children in the arena, so every kept node's parent
// is kept too; indices are remapped to the compacted slice.
func exportTree[S any](nodes, path []search.Node[S], label func(S) string, limit int) ([]TreeNode, bool) {
	onPath := make(map[int]bool, len(path))
	for _, n := range path {
		onPath[n.ID] = true
	}
	remap := make(map[int]int)
	var out []TreeNode
	for i, n := range nodes {
		if i >= limit && !onPath[n.ID] {
			continue
		}
		parent := -1
		if !n.IsRoot() {
			parent = remap[n.Parent]
		}
		remap[i] = len(out)
		out = append(out, TreeNode{
			Index:     len(out),
			Parent:    parent,
			ID:        n.ID,
			Depth:     n.Depth,
			Cost:      n.Cost,
			Heuristic: n.Heuristic,
			Eval:      n.Eval,
			Label:     label(n.State),
			OnPath:    onPath[n.ID],
		})
	}
	return out, len(out) < len(nodes)
}
