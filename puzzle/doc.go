// Package puzzle solves the two-jug water-measuring puzzle.
//
// It provides a closed-form feasibility check and a breadth-first search over
// jug states that returns a shortest sequence of fill, empty and transfer
// operations ending with the target amount in either jug.
//
// Everything in this package is pure: no shared state, no locks, no I/O.
// Callers that want memoization wrap Solve with package cache.
//
// # Basic Usage
//
//	key := puzzle.ProblemKey{X: 4, Y: 3, Target: 2}
//	if err := key.Validate(); err != nil {
//	    return err
//	}
//	if err := puzzle.CheckFeasible(key); err != nil {
//	    return err
//	}
//	solution, err := puzzle.Solve(key)
package puzzle
