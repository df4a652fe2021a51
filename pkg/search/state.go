package search

import "fmt"

// State is the capability contract every domain configuration satisfies.
// S is the concrete state type itself, so successors and goals stay typed.
type State[S any] interface {
	// Successors returns every state reachable in one legal transition.
	// The result is finite, excludes the receiver and leaves it unchanged.
	Successors() []S

	// Matches reports whether the receiver satisfies goal. Domains may treat
	// parts of the goal as wildcards; identical configurations must match.
	Matches(goal S) bool

	// Heuristic estimates the remaining distance to goal. It must not be
	// negative. Domains without an estimate return 0.
	Heuristic(goal S) int

	fmt.Stringer
}

// StepCoster is implemented by states whose incoming transition costs
// something other than 1. The returned cost must not be negative.
type StepCoster interface {
	StepCost() int
}

// stepCost returns the cost of the transition that produced s.
func stepCost(s any) int {
	if c, ok := s.(StepCoster); ok {
		return c.StepCost()
	}
	return 1
}
