package puzzle

import "fmt"

// GCD returns the greatest common divisor of a and b using Euclid's recurrence.
// GCD(a, 0) is a, so GCD(0, n) is n and GCD(0, 0) is 0.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Feasible reports whether key's target can be measured at all.
// It assumes non-negative fields; call ProblemKey.Validate first.
//
// A target is feasible only if it fits in both jugs combined and is a
// multiple of gcd(x, y). With two empty-capacity jugs only zero is feasible.
func Feasible(key ProblemKey) bool {
	// Target > X+Y without forming the sum, which can overflow.
	if key.Target-key.X > key.Y {
		return false
	}
	g := GCD(key.X, key.Y)
	if g == 0 {
		return key.Target == 0
	}
	return key.Target%g == 0
}

// CheckFeasible returns ErrInfeasible if Feasible(key) is false.
func CheckFeasible(key ProblemKey) error {
	if !Feasible(key) {
		return fmt.Errorf("%w: %s", ErrInfeasible, key)
	}
	return nil
}
