package search

import (
	"cmp"
	"container/heap"
	"slices"
)

// frontier holds arena indices of generated but unexpanded nodes.
type frontier interface {
	insert(batch []int)
	next() (int, bool)
	size() int
}

// queue is a FIFO frontier.
type queue struct {
	items []int
	head  int
}

func (q *queue) insert(batch []int) { q.items = append(q.items, batch...) }

func (q *queue) next() (int, bool) {
	if q.head == len(q.items) {
		return 0, false
	}
	i := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items, q.head = q.items[:0], 0
	}
	return i, true
}

func (q *queue) size() int { return len(q.items) - q.head }

// stack is a LIFO frontier; the last index of a batch ends up on top.
type stack struct {
	items []int
}

func (s *stack) insert(batch []int) { s.items = append(s.items, batch...) }

func (s *stack) next() (int, bool) {
	n := len(s.items)
	if n == 0 {
		return 0, false
	}
	i := s.items[n-1]
	s.items = s.items[:n-1]
	return i, true
}

func (s *stack) size() int { return len(s.items) }

// priority is a binary heap ordered by Eval, then Depth, then ID, all
// ascending. It implements heap.Interface over arena indices.
type priority[S any] struct {
	t     *tree[S]
	items []int
}

func (q *priority[S]) Len() int { return len(q.items) }

func (q *priority[S]) Less(i, j int) bool {
	a, b := q.t.nodes[q.items[i]], q.t.nodes[q.items[j]]
	if a.Eval != b.Eval {
		return a.Eval < b.Eval
	}
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	return a.ID < b.ID
}

func (q *priority[S]) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *priority[S]) Push(x any) { q.items = append(q.items, x.(int)) }

func (q *priority[S]) Pop() any {
	n := len(q.items)
	i := q.items[n-1]
	q.items = q.items[:n-1]
	return i
}

func (q *priority[S]) insert(batch []int) {
	for _, i := range batch {
		heap.Push(q, i)
	}
}

func (q *priority[S]) next() (int, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return heap.Pop(q).(int), true
}

func (q *priority[S]) size() int { return len(q.items) }

// policy bundles everything that differs between strategies.
type policy[S any] struct {
	evaluate func(g, h int) int
	arrange  func(t *tree[S], batch []int)
	frontier func(t *tree[S]) frontier
	expand   func(m Meta) bool
}

func sumGH(g, h int) int { return g + h }

func onlyH(_, h int) int { return h }

func onlyG(g, _ int) int { return g }

func always(Meta) bool { return true }

func keep[S any](*tree[S], []int) {}

func byHeuristic[S any](t *tree[S], batch []int) {
	slices.SortStableFunc(batch, func(a, b int) int {
		return cmp.Compare(t.nodes[a].Heuristic, t.nodes[b].Heuristic)
	})
}

func byCost[S any](t *tree[S], batch []int) {
	slices.SortStableFunc(batch, func(a, b int) int {
		return cmp.Compare(t.nodes[a].Cost, t.nodes[b].Cost)
	})
}

func newQueue[S any](*tree[S]) frontier { return &queue{} }
func newStack[S any](*tree[S]) frontier { return &stack{} }
func newPriority[S any](t *tree[S]) frontier {
	return &priority[S]{t: t}
}

func policyFor[S any](s Strategy, limit int) policy[S] {
	switch s {
	case DepthFirst:
		return policy[S]{sumGH, keep[S], newStack[S], always}
	case DepthLimited:
		return policy[S]{sumGH, keep[S], newStack[S], func(m Meta) bool { return m.Depth < limit }}
	case BestFirst:
		return policy[S]{onlyH, byHeuristic[S], newQueue[S], always}
	case BranchAndBound:
		return policy[S]{onlyG, byCost[S], newQueue[S], always}
	case AStar:
		return policy[S]{sumGH, keep[S], newPriority[S], always}
	case HillClimbing:
		return policy[S]{onlyH, func(t *tree[S], batch []int) {
			byHeuristic(t, batch)
			slices.Reverse(batch)
		}, newStack[S], always}
	default:
		return policy[S]{sumGH, keep[S], newQueue[S], always}
	}
}
