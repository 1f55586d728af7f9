package puzzle

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{0, 7, 7},
		{7, 0, 7},
		{2, 6, 2},
		{6, 4, 2},
		{4, 3, 1},
		{12, 18, 6},
		{97, 89, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GCD(tt.a, tt.b), "GCD(%d, %d)", tt.a, tt.b)
	}
}

func TestFeasible_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		key  ProblemKey
		want bool
	}{
		{"coprime capacities", ProblemKey{X: 4, Y: 3, Target: 2}, true},
		{"not a multiple of gcd", ProblemKey{X: 2, Y: 6, Target: 5}, false},
		{"zero target", ProblemKey{X: 3, Y: 5, Target: 0}, true},
		{"exceeds both jugs", ProblemKey{X: 5, Y: 3, Target: 9}, false},
		{"exactly both jugs", ProblemKey{X: 5, Y: 3, Target: 8}, true},
		{"empty jugs zero target", ProblemKey{X: 0, Y: 0, Target: 0}, true},
		{"empty jugs positive target", ProblemKey{X: 0, Y: 0, Target: 1}, false},
		{"one empty jug", ProblemKey{X: 0, Y: 6, Target: 3}, false},
		{"one empty jug full other", ProblemKey{X: 0, Y: 6, Target: 6}, true},
		{"max capacity plus one", ProblemKey{X: math.MaxInt, Y: 1, Target: 1}, true},
		{"both max capacity", ProblemKey{X: math.MaxInt, Y: math.MaxInt, Target: math.MaxInt}, true},
		{"near max capacity", ProblemKey{X: math.MaxInt - 1, Y: 3, Target: 3}, true},
		{"max capacity beyond both", ProblemKey{X: math.MaxInt - 1, Y: 0, Target: math.MaxInt}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Feasible(tt.key))
		})
	}
}

func TestFeasible_MatchesDefinition(t *testing.T) {
	for x := 0; x <= 15; x++ {
		for y := 0; y <= 15; y++ {
			g := GCD(x, y)
			for target := 0; target <= x+y+3; target++ {
				want := target <= x+y && ((g == 0 && target == 0) || (g != 0 && target%g == 0))
				assert.Equal(t, want, Feasible(ProblemKey{X: x, Y: y, Target: target}), "x=%d y=%d target=%d", x, y, target)
			}
		}
	}
}

func TestCheckFeasible(t *testing.T) {
	require.NoError(t, CheckFeasible(ProblemKey{X: 4, Y: 3, Target: 2}))

	err := CheckFeasible(ProblemKey{X: 2, Y: 6, Target: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInfeasible))
	assert.Equal(t, "It's not possible to measure the target amount with the given jug capacities", ErrInfeasible.Error())
}

func TestProblemKey_Validate(t *testing.T) {
	tests := []struct {
		key     ProblemKey
		wantErr bool
	}{
		{ProblemKey{X: 0, Y: 0, Target: 0}, false},
		{ProblemKey{X: 4, Y: 3, Target: 2}, false},
		{ProblemKey{X: -1, Y: 2, Target: 1}, true},
		{ProblemKey{X: 1, Y: -2, Target: 1}, true},
		{ProblemKey{X: 1, Y: 2, Target: -1}, true},
	}

	for _, tt := range tests {
		err := tt.key.Validate()
		if !tt.wantErr {
			assert.NoError(t, err, tt.key.String())
			continue
		}
		require.Error(t, err, tt.key.String())
		assert.True(t, errors.Is(err, ErrInvalidInput))
	}
	assert.Equal(t, "Jug capacities and target amount must be greater or equal to 0", ErrInvalidInput.Error())
}

func TestProblemKey_String(t *testing.T) {
	assert.Equal(t, "4:3:2", ProblemKey{X: 4, Y: 3, Target: 2}.String())
	assert.Equal(t, "-1:2:1", ProblemKey{X: -1, Y: 2, Target: 1}.String())
}
