package puzzle

import "fmt"

// Stats describes the work one search performed.
type Stats struct {
	// Expanded is the number of distinct states whose successors were generated.
	Expanded int

	// Enqueued counts every push onto the frontier, duplicates included.
	Enqueued int

	// Depth is the number of operations in the returned solution.
	Depth int
}

// node is a frontier entry: a state and the operation that produced it.
type node struct {
	state  State
	action string
}

// Solve returns a shortest solution for key.
// The caller must have validated key and checked feasibility.
func Solve(key ProblemKey) (Solution, error) {
	sol, _, err := SolveWithStats(key)
	return sol, err
}

// SolveWithStats is Solve plus a report of the search effort.
//
// The search is a breadth-first traversal from the empty state. A dequeued
// state is tested against the goal before the visited check, and states are
// marked visited when dequeued, not when enqueued. A state may therefore sit
// on the frontier more than once; later copies are dropped when dequeued.
// Because the frontier is strictly FIFO, every state is first dequeued at its
// minimum distance, so the first goal reached ends a shortest path.
//
// At most (x+1)*(y+1) distinct states exist, and each visited state keeps a
// map entry, so memory grows with the capacities. Callers that accept
// untrusted capacities should cap them first.
func SolveWithStats(key ProblemKey) (Solution, Stats, error) {
	var stats Stats

	if key.Target == 0 {
		return Solution{{Index: 1, BucketX: 0, BucketY: 0, Status: StatusSolved}}, stats, nil
	}

	visited := make(map[State]bool)
	parent := make(map[State]node)
	queue := []node{{state: State{}, action: ActionStart}}
	stats.Enqueued = 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.state.X == key.Target || cur.state.Y == key.Target {
			sol := reconstruct(cur, parent)
			stats.Depth = sol.Moves()
			return sol, stats, nil
		}

		if visited[cur.state] {
			continue
		}
		visited[cur.state] = true
		stats.Expanded++

		for _, next := range successors(key, cur.state) {
			if visited[next.state] {
				continue
			}
			queue = append(queue, next)
			stats.Enqueued++
			// First discovery wins; any later producer is no closer to the start.
			if _, ok := parent[next.state]; !ok {
				parent[next.state] = cur
			}
		}
	}

	return nil, stats, fmt.Errorf("%w: %s", ErrSearchExhausted, key)
}

// successors returns the six operations from s in their fixed order.
// The order decides which of several equally short paths is returned.
func successors(key ProblemKey, s State) [6]node {
	toY := min(s.X, key.Y-s.Y)
	toX := min(s.Y, key.X-s.X)

	return [6]node{
		{state: State{X: key.X, Y: s.Y}, action: ActionFillX},
		{state: State{X: s.X, Y: key.Y}, action: ActionFillY},
		{state: State{X: 0, Y: s.Y}, action: ActionEmptyX},
		{state: State{X: s.X, Y: 0}, action: ActionEmptyY},
		{state: State{X: s.X - toY, Y: s.Y + toY}, action: ActionXToY},
		{state: State{X: s.X + toX, Y: s.Y - toX}, action: ActionYToX},
	}
}

// reconstruct walks back-pointers from goal to the start state and renders
// the path start-first. The start state is the only one without a parent.
func reconstruct(goal node, parent map[State]node) Solution {
	path := []node{goal}
	for cur := goal; ; {
		p, ok := parent[cur.state]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}

	n := len(path)
	sol := make(Solution, 0, n)
	for i := n - 1; i > 0; i-- {
		sol = append(sol, stepFor(n-i, path[i]))
	}
	return append(sol, stepFor(n, path[0]).solved())
}

func stepFor(index int, n node) Step {
	return Step{
		Index:   index,
		BucketX: n.state.X,
		BucketY: n.state.Y,
		Action:  n.action,
	}
}

// solved returns a copy of s carrying the solved status.
func (s Step) solved() Step {
	s.Status = StatusSolved
	return s
}
