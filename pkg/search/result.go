package search

// Status is the state of a search run.
type Status int

const (
	// Exploring means the loop is still running.
	Exploring Status = iota
	// Found means the selected node matched the goal.
	Found
	// Exhausted means the frontier emptied without a match.
	Exhausted
	// Cancelled means the context passed to SearchContext ended the run.
	Cancelled
)

var statusNames = [...]string{"exploring", "found", "exhausted", "cancelled"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Stats counts the work done by one run.
type Stats struct {
	Expanded    int // nodes whose successors were generated
	Generated   int // nodes created, excluding the root
	MaxFrontier int // largest frontier size observed
}

// Result is the outcome of one search run. The zero value is an exhausted
// run with an empty path.
type Result[S any] struct {
	Status   Status
	Strategy Strategy
	Stats    Stats

	path []Node[S]
	tree []Node[S]
}

// Solved reports whether a goal node was found.
func (r Result[S]) Solved() bool { return r.Status == Found }

// Path returns the solution nodes from root to terminal, or nil.
func (r Result[S]) Path() []Node[S] { return r.path }

// States returns the configurations along the solution path, root first.
func (r Result[S]) States() []S {
	if len(r.path) == 0 {
		return nil
	}
	out := make([]S, len(r.path))
	for i, n := range r.path {
		out[i] = n.State
	}
	return out
}

// Tree returns every node generated during the run, indexed by arena
// position. Node.Parent values index into this slice.
func (r Result[S]) Tree() []Node[S] { return r.tree }

// Len returns the number of transitions on the solution path.
func (r Result[S]) Len() int {
	if len(r.path) == 0 {
		return 0
	}
	return len(r.path) - 1
}

// Cost returns the accumulated cost of the terminal node, or 0 when no
// solution was found.
func (r Result[S]) Cost() int {
	if len(r.path) == 0 {
		return 0
	}
	return r.path[len(r.path)-1].Cost
}

// Terminal returns the matching node. ok is false when there is none.
func (r Result[S]) Terminal() (n Node[S], ok bool) {
	if len(r.path) == 0 {
		return n, false
	}
	return r.path[len(r.path)-1], true
}
