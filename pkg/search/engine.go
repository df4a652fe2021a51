package search

import (
	"context"
	"fmt"
)

// Options configures an [Engine].
type Options struct {
	// DepthLimit bounds [DepthLimited]: nodes at this depth are not expanded.
	// Zero means [DefaultDepthLimit]. Other strategies ignore it.
	DepthLimit int

	// Observer, when set, is called with every node just before it is expanded.
	Observer func(Meta)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithDepthLimit sets the depth bound used by [DepthLimited]. Zero or a
// negative limit keeps [DefaultDepthLimit]; use [Engine.SetDepthLimit] to
// restrict a search to the root.
func WithDepthLimit(limit int) Option {
	return func(o *Options) { o.DepthLimit = limit }
}

// WithObserver registers a callback invoked once per expansion.
func WithObserver(fn func(Meta)) Option {
	return func(o *Options) { o.Observer = fn }
}

// Engine runs one strategy over states of type S. Configure it with
// SetStart and SetGoal, then call Search. An Engine may be reused; each run
// builds a fresh tree but node IDs keep increasing across runs.
type Engine[S State[S]] struct {
	strategy Strategy
	limit    int
	observer func(Meta)

	start, goal       S
	hasStart, hasGoal bool

	nextID int
}

// New returns an engine for the given strategy.
func New[S State[S]](strategy Strategy, opts ...Option) *Engine[S] {
	o := Options{DepthLimit: DefaultDepthLimit}
	for _, opt := range opts {
		opt(&o)
	}
	if o.DepthLimit <= 0 {
		o.DepthLimit = DefaultDepthLimit
	}
	return &Engine[S]{
		strategy: strategy,
		limit:    o.DepthLimit,
		observer: o.Observer,
	}
}

// Solve is a shorthand for New, SetStart, SetGoal and Search.
func Solve[S State[S]](strategy Strategy, start, goal S, opts ...Option) Result[S] {
	e := New[S](strategy, opts...)
	e.SetStart(start)
	e.SetGoal(goal)
	return e.Search()
}

// Strategy returns the strategy the engine was built with.
func (e *Engine[S]) Strategy() Strategy { return e.strategy }

// Name returns a human-readable strategy name. The depth-limited variant
// includes its current limit.
func (e *Engine[S]) Name() string {
	if e.strategy == DepthLimited {
		return fmt.Sprintf("%s (limit %d)", e.strategy.Title(), e.limit)
	}
	return e.strategy.Title()
}

// SetStart sets the root of the next search.
func (e *Engine[S]) SetStart(s S) { e.start, e.hasStart = s, true }

// SetGoal sets the configuration matched against every selected node.
func (e *Engine[S]) SetGoal(s S) { e.goal, e.hasGoal = s, true }

// Start returns the configured start state.
func (e *Engine[S]) Start() S { return e.start }

// Goal returns the configured goal state.
func (e *Engine[S]) Goal() S { return e.goal }

// DepthLimit returns the bound used by [DepthLimited].
func (e *Engine[S]) DepthLimit() int { return e.limit }

// SetDepthLimit changes the bound used by [DepthLimited]. Unlike
// [WithDepthLimit], zero is taken literally and only lets the root be
// examined; values below zero are treated as zero.
func (e *Engine[S]) SetDepthLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	e.limit = limit
}

// Search runs the strategy to completion. A run without a start state
// returns an exhausted result. Without a goal nothing can match, so the run
// ends only when the frontier empties.
func (e *Engine[S]) Search() Result[S] {
	res, _ := e.SearchContext(context.Background())
	return res
}

// SearchContext behaves like Search but checks ctx before every expansion.
// When ctx ends first the result has status [Cancelled], carries the work
// done so far and ctx.Err() is returned.
func (e *Engine[S]) SearchContext(ctx context.Context) (Result[S], error) {
	res := Result[S]{Status: Exploring, Strategy: e.strategy}
	if !e.hasStart {
		res.Status = Exhausted
		return res, nil
	}

	t := &tree[S]{}
	p := policyFor[S](e.strategy, e.limit)
	f := p.frontier(t)

	cur := t.add(e.node(e.start, -1, 0, 0, p))
	for !e.matches(t.at(cur).State) {
		if err := ctx.Err(); err != nil {
			res.Status = Cancelled
			res.tree = t.nodes
			return res, err
		}

		n := t.at(cur)
		if p.expand(n.Meta) {
			if e.observer != nil {
				e.observer(n.Meta)
			}
			succ := n.State.Successors()
			batch := make([]int, len(succ))
			for i, s := range succ {
				batch[i] = t.add(e.node(s, cur, n.Depth+1, n.Cost+stepCost(s), p))
			}
			res.Stats.Expanded++
			res.Stats.Generated += len(batch)
			p.arrange(t, batch)
			f.insert(batch)
			if sz := f.size(); sz > res.Stats.MaxFrontier {
				res.Stats.MaxFrontier = sz
			}
		}

		next, ok := f.next()
		if !ok {
			res.Status = Exhausted
			res.tree = t.nodes
			return res, nil
		}
		cur = next
	}

	res.Status = Found
	res.tree = t.nodes
	res.path = reconstruct(t.nodes, cur)
	return res, nil
}

func (e *Engine[S]) matches(s S) bool {
	return e.hasGoal && s.Matches(e.goal)
}

// node builds a complete node for s, assigning the next identity.
func (e *Engine[S]) node(s S, parent, depth, cost int, p policy[S]) Node[S] {
	h := 0
	if e.hasGoal {
		h = s.Heuristic(e.goal)
	}
	id := e.nextID
	e.nextID++
	return Node[S]{
		Meta: Meta{
			ID:        id,
			Depth:     depth,
			Parent:    parent,
			Cost:      cost,
			Heuristic: h,
			Eval:      p.evaluate(cost, h),
		},
		State: s,
	}
}
