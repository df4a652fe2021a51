package search

import (
	"fmt"
	"io"
	"slices"
)

// reconstruct walks parent links from the node at index terminal back to the
// root and returns the chain root first. The result has terminal depth + 1
// entries.
func reconstruct[S any](nodes []Node[S], terminal int) []Node[S] {
	path := make([]Node[S], 0, nodes[terminal].Depth+1)
	for i := terminal; i >= 0; i = nodes[i].Parent {
		path = append(path, nodes[i])
	}
	slices.Reverse(path)
	return path
}

// Render writes each node of path, root first: a metadata header line
// followed by the state's own rendering.
func Render[S fmt.Stringer](w io.Writer, path []Node[S]) error {
	for _, n := range path {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", n.Meta, n.State); err != nil {
			return err
		}
	}
	return nil
}
