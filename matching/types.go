// SPDX-License-Identifier: MIT

package matching

import "errors"

// Sentinel errors. Every message is prefixed with "matching: "; context such
// as the offending row is attached with %w, so callers match via errors.Is.
var (
	// ErrEmptyMatrix is returned for a nil matrix, zero rows or zero columns.
	ErrEmptyMatrix = errors.New("matching: cost matrix is empty")

	// ErrJaggedMatrix is returned when rows differ in length.
	ErrJaggedMatrix = errors.New("matching: cost matrix rows differ in length")

	// ErrTooManyRows is returned when n > m (more left than right vertices).
	ErrTooManyRows = errors.New("matching: more left vertices than right vertices")

	// ErrNegativeWeight is returned when an entry is below zero.
	ErrNegativeWeight = errors.New("matching: negative edge weight")

	// ErrWeightTooLarge is returned when an entry exceeds CostLimit for the
	// matrix width, where sums of potentials could overflow int64.
	ErrWeightTooLarge = errors.New("matching: edge weight too large")

	// ErrVertexOutOfRange is returned by accessors given an invalid index.
	ErrVertexOutOfRange = errors.New("matching: vertex index out of range")

	// ErrStalled signals an invariant violation: a phase neither augmented
	// the matching nor found a positive-slack frontier edge to relax, while
	// the matching is still imperfect. It cannot occur for valid input.
	ErrStalled = errors.New("matching: no augmenting path and no frontier edge to relax")
)

// Unmatched marks a vertex without a partner.
const Unmatched = -1

// Pair is one matched edge of the final assignment.
type Pair struct {
	Left  int   // row index in [0, n)
	Right int   // column index in [0, m)
	Cost  int64 // costs[Left][Right]
}

// Stats counts the work done by an engine so far.
type Stats struct {
	// Phases is the number of BFS+DFS+relaxation cycles executed.
	Phases int `json:"phases" yaml:"phases"`
	// Relaxations is the number of phases whose relaxation shifted potentials
	// (phases where no frontier edge existed are not counted).
	Relaxations int `json:"relaxations" yaml:"relaxations"`
	// Augmentations is the number of successful augmenting searches started
	// from real left vertices. Equals n once the matching is complete.
	Augmentations int `json:"augmentations" yaml:"augmentations"`
}

// Result bundles the outcome of MaxWeight.
type Result struct {
	Total int64
	Pairs []Pair
	Stats Stats
}

// PhaseInfo describes one finished phase; it is passed to the OnPhase hook.
type PhaseInfo struct {
	Phase       int   // 1-based phase number
	ReachedFree bool  // BFS reached an unmatched right vertex
	Augmented   int   // augmenting paths committed by this phase (real rows only)
	Matched     int   // real left vertices matched after this phase
	Relaxed     bool  // potentials were shifted
	Delta       int64 // shift amount when Relaxed, otherwise 0
}

// RelaxInfo describes one applied potential shift; it is passed to OnRelax.
type RelaxInfo struct {
	Phase        int
	Delta        int64
	VisitedLeft  int // left vertices whose potential decreased
	VisitedRight int // right vertices whose potential increased
}
