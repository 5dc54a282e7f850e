package scheduling

import "errors"

var (
	// ErrIterationBudget indicates the fixpoint loop exceeded its bound.
	// Given the no-cycle invariant this should never trigger; it guards
	// against graph corruption bugs rather than expected input.
	ErrIterationBudget = errors.New("rescheduling exceeded iteration budget")

	// ErrUnknownSeed indicates a seed item ID not present in the graph.
	ErrUnknownSeed = errors.New("seed work item not in graph")
)
