// SPDX-License-Identifier: MIT

package matching

import "fmt"

// Engine owns one weighted bipartite instance and its matching/dual state.
//
// Internally the left side has `order` = m vertices: the n real rows followed
// by m−n zero-weight slack rows (none when n = m). Public accessors only
// expose real rows.
type Engine struct {
	costs *CostMatrix

	potentialL []int64 // len order
	potentialR []int64 // len m

	pairL []int // len order; Unmatched or right index
	pairR []int // len m; Unmatched or left index (slack rows included)

	matched     int // matched left vertices, slack rows included
	matchedReal int // matched real rows

	scratch *phaseScratch
	stats   Stats
	opts    Options
}

// New validates costs and builds an engine with an empty matching and
// the initial feasible potentials. On error no engine is returned.
//
// Errors: see NewCostMatrix.
//
// Complexity: O(n·m + m) time and memory.
func New(costs [][]int64, opts ...Option) (*Engine, error) {
	cm, err := NewCostMatrix(costs)
	if err != nil {
		return nil, err
	}

	return NewWithMatrix(cm, opts...), nil
}

// NewWithMatrix builds an engine over an already validated CostMatrix.
// The matrix is shared read-only.
func NewWithMatrix(cm *CostMatrix, opts ...Option) *Engine {
	order := cm.Cols() // n ≤ m, padded up to m left vertices
	e := &Engine{
		costs:      cm,
		potentialL: make([]int64, order),
		potentialR: make([]int64, cm.Cols()),
		pairL:      make([]int, order),
		pairR:      make([]int, cm.Cols()),
		scratch:    newPhaseScratch(order, cm.Cols(), order > cm.Rows()),
		opts:       buildOptions(opts),
	}
	var i int
	for i = range e.pairL {
		e.pairL[i] = Unmatched
	}
	for i = range e.pairR {
		e.pairR[i] = Unmatched
	}
	e.initPotentials()

	return e
}

// Done reports whether every left vertex is matched.
func (e *Engine) Done() bool {
	return e.matched >= len(e.pairL)
}

// Step runs a single phase:
//  1. reset scratch and layer the tight subgraph (BFS), then close the
//     alternating forest;
//  2. if a free right vertex was reached, augment from every free left
//     vertex (DFS);
//  3. relax potentials over this phase's forest, whether or not step 2
//     augmented anything.
//
// It returns false without doing anything once the matching is complete.
// ErrStalled is returned if the phase could neither augment nor relax.
//
// Complexity: O(n·m + m·log m) per phase.
func (e *Engine) Step() (bool, error) {
	if e.Done() {
		return false, nil
	}
	s := e.beginPhase()
	e.stats.Phases++

	// 1) BFS layering + forest closure.
	reachedFree := e.layer(s)
	e.closeForest(s)

	// 2) DFS augmentation.
	var augmented, augmentedReal int
	if reachedFree {
		augmented, augmentedReal = e.augmentAll(s)
		e.matched += augmented
		e.matchedReal += augmentedReal
		e.stats.Augmentations += augmentedReal
	}

	// 3) Unconditional relaxation.
	delta, relaxed := e.relax(s)
	if relaxed {
		e.stats.Relaxations++
		vl, vr := s.countVisited()
		e.opts.OnRelax(RelaxInfo{Phase: e.stats.Phases, Delta: delta, VisitedLeft: vl, VisitedRight: vr})
	}
	e.opts.OnPhase(PhaseInfo{
		Phase:       e.stats.Phases,
		ReachedFree: reachedFree,
		Augmented:   augmentedReal,
		Matched:     e.matchedReal,
		Relaxed:     relaxed,
		Delta:       delta,
	})

	if augmented == 0 && !relaxed && !e.Done() {
		return false, fmt.Errorf("%w: phase %d, %d of %d left vertices matched",
			ErrStalled, e.stats.Phases, e.matchedReal, e.costs.Rows())
	}

	return true, nil
}

// Solve runs phases until the matching is perfect on the left side and
// returns its total weight. Calling Solve again is a no-op returning the
// same total.
func (e *Engine) Solve() (int64, error) {
	for !e.Done() {
		if _, err := e.Step(); err != nil {
			return e.Total(), err
		}
	}

	return e.Total(), nil
}

// Total returns the weight of the current (possibly partial) matching.
func (e *Engine) Total() int64 {
	var (
		total int64
		i     int
	)
	for i = 0; i < e.costs.Rows(); i++ {
		if e.pairL[i] != Unmatched {
			total += e.costs.weight(i, e.pairL[i])
		}
	}

	return total
}

// Pairs returns every matched real edge ordered by left index.
func (e *Engine) Pairs() []Pair {
	out := make([]Pair, 0, e.matchedReal)
	var i int
	for i = 0; i < e.costs.Rows(); i++ {
		if j := e.pairL[i]; j != Unmatched {
			out = append(out, Pair{Left: i, Right: j, Cost: e.costs.weight(i, j)})
		}
	}

	return out
}

// Size returns the number of matched real left vertices.
func (e *Engine) Size() int { return e.matchedReal }

// Rows returns n.
func (e *Engine) Rows() int { return e.costs.Rows() }

// Cols returns m.
func (e *Engine) Cols() int { return e.costs.Cols() }

// Costs returns the engine's cost matrix.
func (e *Engine) Costs() *CostMatrix { return e.costs }

// Stats returns the work counters accumulated so far.
func (e *Engine) Stats() Stats { return e.stats }

// PartnerOfLeft returns the right partner of left vertex i, or Unmatched.
func (e *Engine) PartnerOfLeft(i int) (int, error) {
	if i < 0 || i >= e.costs.Rows() {
		return Unmatched, fmt.Errorf("%w: left %d of %d", ErrVertexOutOfRange, i, e.costs.Rows())
	}

	return e.pairL[i], nil
}

// PartnerOfRight returns the real left partner of right vertex j, or
// Unmatched (also when j is held by a slack row).
func (e *Engine) PartnerOfRight(j int) (int, error) {
	if j < 0 || j >= e.costs.Cols() {
		return Unmatched, fmt.Errorf("%w: right %d of %d", ErrVertexOutOfRange, j, e.costs.Cols())
	}
	if p := e.pairR[j]; p != Unmatched && p < e.costs.Rows() {
		return p, nil
	}

	return Unmatched, nil
}

// Potentials returns copies of potentialL (real rows only) and potentialR.
func (e *Engine) Potentials() (left, right []int64) {
	left = append([]int64(nil), e.potentialL[:e.costs.Rows()]...)
	right = append([]int64(nil), e.potentialR...)

	return left, right
}

// DualBound returns the sum of all potentials, slack rows included.
// It bounds the weight of every left-perfect matching from above at any
// time, and equals the optimum once Done.
func (e *Engine) DualBound() int64 {
	var sum int64
	for _, p := range e.potentialL {
		sum += p
	}
	for _, p := range e.potentialR {
		sum += p
	}

	return sum
}

// Slack returns potentialL[i] + potentialR[j] − costs[i][j] for a real edge.
func (e *Engine) Slack(i, j int) (int64, error) {
	if i < 0 || i >= e.costs.Rows() || j < 0 || j >= e.costs.Cols() {
		return 0, fmt.Errorf("%w: (%d,%d) in %d×%d", ErrVertexOutOfRange, i, j, e.costs.Rows(), e.costs.Cols())
	}

	return e.slack(i, j), nil
}

// MaxWeight builds an engine for costs, solves it and returns the result.
func MaxWeight(costs [][]int64, opts ...Option) (Result, error) {
	e, err := New(costs, opts...)
	if err != nil {
		return Result{}, err
	}
	total, err := e.Solve()
	if err != nil {
		return Result{}, err
	}

	return Result{Total: total, Pairs: e.Pairs(), Stats: e.Stats()}, nil
}
