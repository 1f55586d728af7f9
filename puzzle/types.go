package puzzle

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Step labels, in the order successors are generated.
const (
	ActionStart  = "Start"
	ActionFillX  = "Fill bucket X"
	ActionFillY  = "Fill bucket Y"
	ActionEmptyX = "Empty bucket X"
	ActionEmptyY = "Empty bucket Y"
	ActionXToY   = "Transfer from bucket X to bucket Y"
	ActionYToX   = "Transfer from bucket Y to bucket X"
)

// StatusSolved marks the final step of a solution.
const StatusSolved = "Solved"

var keyValidate = validator.New()

// State is the current contents of jug X and jug Y.
type State struct {
	X int
	Y int
}

// ProblemKey fully parameterizes one puzzle instance.
// It is comparable and doubles as the cache key.
type ProblemKey struct {
	X      int `json:"x_capacity" validate:"gte=0"`
	Y      int `json:"y_capacity" validate:"gte=0"`
	Target int `json:"z_amount_wanted" validate:"gte=0"`
}

// String renders the key as "x:y:target".
func (k ProblemKey) String() string {
	return strconv.Itoa(k.X) + ":" + strconv.Itoa(k.Y) + ":" + strconv.Itoa(k.Target)
}

// Validate returns ErrInvalidInput if any field is negative.
func (k ProblemKey) Validate() error {
	if err := keyValidate.Struct(k); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, k)
	}
	return nil
}

// Step is one entry of a rendered solution trace.
type Step struct {
	Index   int    `json:"step"`
	BucketX int    `json:"bucketX"`
	BucketY int    `json:"bucketY"`
	Action  string `json:"action,omitempty"`
	Status  string `json:"status,omitempty"`
}

// State returns the jug levels after this step.
func (s Step) State() State {
	return State{X: s.BucketX, Y: s.BucketY}
}

// Solution is an ordered trace from the empty jugs to a state holding the target.
// A Solution is never modified after it is returned; share it freely.
type Solution []Step

// Final returns the last step. It panics on an empty solution.
func (s Solution) Final() Step {
	return s[len(s)-1]
}

// Moves returns the number of real operations, excluding the start step.
func (s Solution) Moves() int {
	if len(s) == 0 {
		return 0
	}
	return len(s) - 1
}
