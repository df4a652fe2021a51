// Package tree renders exported search trees as Graphviz DOT and SVG.
//
// Every node of a [solver.Result] tree becomes a DOT node labelled with its
// board and the g, h and f values at the time it was generated. Nodes on the
// solution path are highlighted and the edges between them drawn bold, so
// the shape of the search (how wide breadth-first spreads, how deep
// depth-first dives) is visible at a glance.
//
//	res, _ := runner.Solve(ctx, solver.Options{Start: "1,2,3,4,5,6,_,7,8", Tree: true})
//	dot := tree.ToDOT(res.Tree, tree.Options{Grid: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// RenderSVG requires cgo-free Graphviz from github.com/goccy/go-graphviz,
// which runs the layout engine as WebAssembly.
package tree
