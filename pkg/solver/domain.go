package solver

import (
	"context"

	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/puzzle/slidingtile"
	"github.com/matzehuels/statesearch/pkg/puzzle/tictactoe"
	"github.com/matzehuels/statesearch/pkg/search"
)

func (r *Runner) runSlidingTile(ctx context.Context, opts Options) (*Result, error) {
	metric, _ := slidingtile.ParseMetric(opts.Heuristic)
	start, err := slidingtile.Parse(opts.Start)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBoard, err, "start board")
	}
	goal, err := slidingtile.Parse(opts.Goal)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBoard, err, "goal board")
	}
	if start.HasWildcards() {
		return nil, errs.New(errs.ErrCodeInvalidBoard, "start board cannot contain wildcards")
	}
	if !start.Solvable(goal) {
		return nil, errs.New(errs.ErrCodeUnsolvable, "%s cannot reach %s: inversion parities differ",
			start.Compact(), goal.Compact())
	}
	return execute(ctx, r, opts, start.WithMetric(metric), goal, slidingtile.Board.Compact)
}

func (r *Runner) runTicTacToe(ctx context.Context, opts Options) (*Result, error) {
	player, _ := tictactoe.ParsePlayer(opts.Player)
	start, err := tictactoe.Parse(opts.Start, player)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBoard, err, "start board")
	}
	goal, err := tictactoe.Parse(opts.Goal, player)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBoard, err, "goal board")
	}
	for _, c := range start.Cells() {
		if c == tictactoe.Wildcard {
			return nil, errs.New(errs.ErrCodeInvalidBoard, "start board cannot contain wildcards")
		}
	}
	return execute(ctx, r, opts, start, goal, tictactoe.Board.Compact)
}

// execute runs one bounded search and converts the result.
func execute[S search.State[S]](ctx context.Context, r *Runner, opts Options, start, goal S, label func(S) string) (*Result, error) {
	bctx, cancel, observe := r.bounded(ctx, opts)
	defer cancel()

	expanded := 0
	e := search.New[S](opts.strategy,
		search.WithDepthLimit(opts.DepthLimit),
		search.WithObserver(func(search.Meta) {
			expanded++
			observe(expanded)
		}))
	e.SetStart(start)
	e.SetGoal(goal)

	res, err := e.SearchContext(bctx)
	out := convert(res, label, opts.Tree, opts.TreeLimit)
	out.Title = e.Name()
	return out, stopped(ctx, bctx, err, opts)
}
