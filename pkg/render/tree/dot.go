package tree

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/statesearch/pkg/solver"
)

const (
	pathColor  = "#f2c14e"
	leafColor  = "#eeeeee"
	innerColor = "white"
)

// Options controls DOT output.
type Options struct {
	// Title is drawn above the graph when set.
	Title string
	// Grid draws nine-cell boards as three rows instead of one line.
	Grid bool
	// Detailed adds the node ID and g/h/f values under each board.
	Detailed bool
}

// ToDOT returns a DOT digraph of nodes. Parent links must index into nodes,
// as produced by the solver.
func ToDOT(nodes []solver.TreeNode, opts Options) string {
	children := make([]int, len(nodes))
	for _, n := range nodes {
		if n.Parent >= 0 {
			children[n.Parent]++
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph SearchTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n\n")

	for i, n := range nodes {
		fill := innerColor
		switch {
		case n.OnPath:
			fill = pathColor
		case children[i] == 0:
			fill = leafColor
		}
		fmt.Fprintf(&buf, "  n%d [label=%q, fillcolor=%q];\n", i, label(n, opts), fill)
	}
	buf.WriteString("\n")
	for i, n := range nodes {
		if n.Parent < 0 {
			continue
		}
		if n.OnPath {
			fmt.Fprintf(&buf, "  n%d -> n%d [penwidth=2.5];\n", n.Parent, i)
		} else {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.Parent, i)
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func label(n solver.TreeNode, opts Options) string {
	board := n.Label
	if opts.Grid {
		board = grid(board)
	}
	if !opts.Detailed {
		return board
	}
	return fmt.Sprintf("%s\n#%d g=%d h=%d f=%d", board, n.ID, n.Cost, n.Heuristic, n.Eval)
}

// grid turns "1,2,3,4,5,6,7,8,_" into three space-separated rows.
func grid(compact string) string {
	cells := strings.Split(compact, ",")
	if len(cells) != 9 {
		return compact
	}
	rows := make([]string, 3)
	for r := range rows {
		rows[r] = strings.Join(cells[r*3:r*3+3], " ")
	}
	return strings.Join(rows, "\n")
}

// RenderSVG lays out dot with Graphviz and returns an SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
