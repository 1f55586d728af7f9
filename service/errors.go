package service

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/jugsolver/puzzle"
)

// Kind classifies a Solve error for the caller.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidInput
	KindInfeasible
	KindTooLarge
	KindInternal
)

// ErrCapacityLimit indicates a jug capacity above the limit set with
// WithMaxCapacity. Its message is returned to callers verbatim.
var ErrCapacityLimit = errors.New("Jug capacities exceed the maximum supported by this server")

func capacityError(key puzzle.ProblemKey, limit int) error {
	return fmt.Errorf("%w: %s exceeds %d", ErrCapacityLimit, key, limit)
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid_input"
	case KindInfeasible:
		return "infeasible"
	case KindTooLarge:
		return "too_large"
	default:
		return "internal"
	}
}

// InternalMessage is the public text of every KindInternal error.
const InternalMessage = "internal error"

// Classify maps err to a Kind. Anything that is not a client error is internal.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, puzzle.ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, puzzle.ErrInfeasible):
		return KindInfeasible
	case errors.Is(err, ErrCapacityLimit):
		return KindTooLarge
	default:
		return KindInternal
	}
}

// PublicMessage returns the text that may be shown to a client for err.
// Client errors carry their fixed message; internal details are withheld.
func PublicMessage(err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindInvalidInput:
		return puzzle.ErrInvalidInput.Error()
	case KindInfeasible:
		return puzzle.ErrInfeasible.Error()
	case KindTooLarge:
		return ErrCapacityLimit.Error()
	default:
		return InternalMessage
	}
}
