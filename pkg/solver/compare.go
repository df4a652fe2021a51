package solver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/statesearch/pkg/errors"
	"github.com/matzehuels/statesearch/pkg/search"
)

// Compare solves the problem in opts once per strategy, concurrently, and
// returns the results in the order of strategies. An empty list compares
// every strategy.
//
// A strategy that runs out of time or budget contributes its partial result
// rather than failing the comparison. Any other error cancels the remaining
// searches and is returned.
func (r *Runner) Compare(ctx context.Context, opts Options, strategies []string) ([]*Result, error) {
	if len(strategies) == 0 {
		for _, s := range search.Strategies() {
			strategies = append(strategies, s.String())
		}
	}

	results := make([]*Result, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range strategies {
		o := opts
		o.Strategy = name
		g.Go(func() error {
			res, err := r.Solve(gctx, o)
			if err != nil && !partial(err) {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func partial(err error) bool {
	return errs.Is(err, errs.ErrCodeTimeout) || errs.Is(err, errs.ErrCodeLimitExceeded)
}
