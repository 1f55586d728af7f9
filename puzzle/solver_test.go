package puzzle

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortestMoves is an independent oracle: plain BFS with visited-on-enqueue.
func shortestMoves(key ProblemKey) (int, bool) {
	dist := map[State]int{{}: 0}
	queue := []State{{}}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if s.X == key.Target || s.Y == key.Target {
			return dist[s], true
		}
		for _, n := range successors(key, s) {
			if _, ok := dist[n.state]; !ok {
				dist[n.state] = dist[s] + 1
				queue = append(queue, n.state)
			}
		}
	}
	return 0, false
}

func TestSolve_FourThreeTwo(t *testing.T) {
	sol, err := Solve(ProblemKey{X: 4, Y: 3, Target: 2})
	require.NoError(t, err)

	want := Solution{
		{Index: 1, BucketX: 0, BucketY: 0, Action: ActionStart},
		{Index: 2, BucketX: 0, BucketY: 3, Action: ActionFillY},
		{Index: 3, BucketX: 3, BucketY: 0, Action: ActionYToX},
		{Index: 4, BucketX: 3, BucketY: 3, Action: ActionFillY},
		{Index: 5, BucketX: 4, BucketY: 2, Action: ActionYToX, Status: StatusSolved},
	}
	assert.Equal(t, want, sol)
}

func TestSolve_FiveThreeFour(t *testing.T) {
	sol, err := Solve(ProblemKey{X: 5, Y: 3, Target: 4})
	require.NoError(t, err)

	actions := make([]string, 0, len(sol))
	for _, s := range sol {
		actions = append(actions, s.Action)
	}
	assert.Equal(t, []string{
		ActionStart, ActionFillX, ActionXToY, ActionEmptyY, ActionXToY, ActionFillX, ActionXToY,
	}, actions)
	assert.Equal(t, State{X: 4, Y: 3}, sol.Final().State())
	assert.Equal(t, 6, sol.Moves())
}

func TestSolve_TrivialTarget(t *testing.T) {
	for _, key := range []ProblemKey{{X: 3, Y: 5}, {X: 0, Y: 0}, {X: 100, Y: 7}} {
		sol, stats, err := SolveWithStats(key)
		require.NoError(t, err)
		require.Len(t, sol, 1)
		assert.Equal(t, Step{Index: 1, Status: StatusSolved}, sol[0])
		assert.Zero(t, stats.Expanded, "trivial target must not search")

		data, err := json.Marshal(sol[0])
		require.NoError(t, err)
		assert.JSONEq(t, `{"step":1,"bucketX":0,"bucketY":0,"status":"Solved"}`, string(data))
	}
}

func TestSolve_ZeroCapacityJug(t *testing.T) {
	sol, err := Solve(ProblemKey{X: 0, Y: 5, Target: 5})
	require.NoError(t, err)
	require.Len(t, sol, 2)
	assert.Equal(t, ActionFillY, sol[1].Action)
	assert.Equal(t, StatusSolved, sol[1].Status)
}

func TestSolve_HugeCapacity(t *testing.T) {
	key := ProblemKey{X: math.MaxInt, Y: 1, Target: 1}
	require.True(t, Feasible(key))

	sol, err := Solve(key)
	require.NoError(t, err)
	require.Len(t, sol, 2)
	assert.Equal(t, ActionFillY, sol[1].Action)
	assert.Equal(t, State{X: 0, Y: 1}, sol.Final().State())
}

func TestSolve_ShortestAndWellFormed(t *testing.T) {
	for x := 0; x <= 12; x++ {
		for y := 0; y <= 12; y++ {
			for target := 1; target <= max(x, y); target++ {
				key := ProblemKey{X: x, Y: y, Target: target}
				if !Feasible(key) {
					continue
				}

				sol, err := Solve(key)
				require.NoError(t, err, key.String())

				want, ok := shortestMoves(key)
				require.True(t, ok, key.String())
				assert.Equal(t, want, sol.Moves(), "not shortest for %s", key)

				assert.Equal(t, ActionStart, sol[0].Action)
				assert.Equal(t, State{}, sol[0].State())
				for i, s := range sol {
					assert.Equal(t, i+1, s.Index)
					assert.True(t, s.BucketX >= 0 && s.BucketX <= x, "%s step %d", key, i)
					assert.True(t, s.BucketY >= 0 && s.BucketY <= y, "%s step %d", key, i)
					if i < len(sol)-1 {
						assert.Empty(t, s.Status, "%s step %d", key, i)
					}
				}
				final := sol.Final()
				assert.True(t, final.BucketX == target || final.BucketY == target, key.String())
				assert.Equal(t, StatusSolved, final.Status)
			}
		}
	}
}

func TestSolve_ExhaustedIsInvariantViolation(t *testing.T) {
	// Passes the closed-form check but no single jug can hold the target.
	for _, key := range []ProblemKey{{X: 1, Y: 1, Target: 2}, {X: 3, Y: 5, Target: 8}} {
		require.True(t, Feasible(key))

		sol, stats, err := SolveWithStats(key)
		assert.Nil(t, sol)
		assert.True(t, errors.Is(err, ErrSearchExhausted))
		assert.True(t, errors.Is(err, ErrInvariantViolation))
		assert.LessOrEqual(t, stats.Expanded, (key.X+1)*(key.Y+1))
	}
}

func TestSolveWithStats_BoundedWork(t *testing.T) {
	key := ProblemKey{X: 97, Y: 89, Target: 50}
	sol, stats, err := SolveWithStats(key)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Expanded, (key.X+1)*(key.Y+1))
	assert.GreaterOrEqual(t, stats.Enqueued, stats.Expanded)
	assert.Equal(t, sol.Moves(), stats.Depth)
}

func TestSolve_ReturnsFreshSolutions(t *testing.T) {
	key := ProblemKey{X: 4, Y: 3, Target: 2}
	a, err := Solve(key)
	require.NoError(t, err)
	b, err := Solve(key)
	require.NoError(t, err)

	a[0].Action = "mutated"
	assert.Equal(t, ActionStart, b[0].Action)
}

func TestSuccessors_Order(t *testing.T) {
	got := successors(ProblemKey{X: 4, Y: 3}, State{X: 2, Y: 2})
	want := [6]node{
		{state: State{X: 4, Y: 2}, action: ActionFillX},
		{state: State{X: 2, Y: 3}, action: ActionFillY},
		{state: State{X: 0, Y: 2}, action: ActionEmptyX},
		{state: State{X: 2, Y: 0}, action: ActionEmptyY},
		{state: State{X: 1, Y: 3}, action: ActionXToY},
		{state: State{X: 4, Y: 0}, action: ActionYToX},
	}
	assert.Equal(t, want, got)
}
