// Package search explores discrete state spaces with interchangeable
// uninformed and heuristic strategies.
//
// # Overview
//
// A search starts from a start state and repeatedly selects the next node to
// expand from a frontier until the selected node matches the goal or the
// frontier runs dry. Every generated state becomes a [Node] in an explicit
// search tree owned by the [Engine]; the solution path is recovered by walking
// parent links from the terminal node back to the root.
//
// Domains plug in through the [State] contract: successor generation, a goal
// test, a heuristic estimate and a textual rendering. The engine is generic
// over the concrete state type, so domains never need type assertions:
//
//	e := search.New[slidingtile.Board](search.AStar)
//	e.SetStart(start)
//	e.SetGoal(slidingtile.Goal())
//	res := e.Search()
//	for _, s := range res.States() {
//	    fmt.Println(s)
//	}
//
// # Strategies
//
// Each [Strategy] differs only in how it fills and drains the frontier:
//
//   - [BreadthFirst]: FIFO queue.
//   - [DepthFirst]: LIFO stack, successors pushed in generation order.
//   - [DepthLimited]: LIFO stack, nodes at the depth limit are not expanded.
//   - [BestFirst]: successors sorted by heuristic, then queued.
//   - [BranchAndBound]: successors sorted by accumulated cost, then queued.
//   - [AStar]: binary heap on cost plus heuristic, shallower nodes win ties.
//   - [HillClimbing]: successors sorted by heuristic, best pushed last.
//
// The goal test runs when a node is selected, never when it is generated.
//
// # Limitations
//
// There is no visited set and no cycle detection. Spaces with repeated
// configurations (the sliding-tile puzzle is one) make the frontier grow
// without bound for the unlimited strategies; memory use is the caller's
// concern. [DepthLimited] is the only built-in bound. [Engine.SearchContext]
// lets a caller impose an external deadline.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Independent engines share nothing
// and may run on separate goroutines.
package search
