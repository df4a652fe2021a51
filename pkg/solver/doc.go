// Package solver runs searches over the built-in domains with caching, run
// history and observability.
//
// The search package knows nothing about board notation, deadlines or
// storage. This package is the layer the CLI and the HTTP API share: it
// parses boards, validates options, applies a timeout and an expansion
// budget, converts the typed search result into a domain-agnostic [Result]
// and records it.
//
// # Usage
//
//	runner := solver.NewRunner(c, nil, store, logger)
//	res, err := runner.Solve(ctx, solver.Options{
//	    Domain:   solver.DomainSlidingTile,
//	    Strategy: "astar",
//	    Start:    "2,4,3,7,1,6,5,_,8",
//	})
//	if err != nil {
//	    return err
//	}
//	for _, step := range res.Steps {
//	    fmt.Println(step.Board)
//	}
//
// Several strategies can be compared on one problem:
//
//	results, err := runner.Compare(ctx, opts, []string{"bfs", "astar", "dls"})
package solver
