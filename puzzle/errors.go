package puzzle

import (
	"errors"
	"fmt"
)

// Client errors. The messages are part of the HTTP contract and are returned
// to callers verbatim.
var (
	// ErrInvalidInput indicates a negative capacity or target.
	ErrInvalidInput = errors.New("Jug capacities and target amount must be greater or equal to 0")

	// ErrInfeasible indicates the target fails the divisibility or capacity test.
	ErrInfeasible = errors.New("It's not possible to measure the target amount with the given jug capacities")
)

// Internal errors.
var (
	// ErrInvariantViolation indicates a defect: a result the feasibility check
	// promised could not be produced.
	ErrInvariantViolation = errors.New("puzzle: internal invariant violated")

	// ErrSearchExhausted indicates the BFS frontier emptied without reaching a goal state.
	ErrSearchExhausted = fmt.Errorf("%w: search exhausted without reaching target", ErrInvariantViolation)
)
