// SPDX-License-Identifier: MIT

package matching

import "slices"

// Dual state.
//
// Invariants kept across the whole run (for every real or slack row i and
// every column j):
//
//	potentialL[i] + potentialR[j] ≥ w(i,j)      (dual feasibility)
//	pairL[i] = j  ⇒  potentialL[i] + potentialR[j] = w(i,j)   (matched ⇒ tight)
//
// potentialL only decreases and potentialR only increases.

// initPotentials sets potentialL[i] to the row maximum and potentialR to 0.
// With an empty matching this is the standard feasible start for maximization.
//
// Complexity: O(order·m).
func (e *Engine) initPotentials() {
	var i int
	for i = range e.potentialL {
		e.potentialL[i] = e.costs.RowMax(i)
	}
	for i = range e.potentialR {
		e.potentialR[i] = 0
	}
}

// slack returns potentialL[i] + potentialR[j] − w(i,j).
func (e *Engine) slack(i, j int) int64 {
	return e.potentialL[i] + e.potentialR[j] - e.costs.weight(i, j)
}

// isTight reports whether edge (i,j) has zero slack.
func (e *Engine) isTight(i, j int) bool {
	return e.slack(i, j) == 0
}

// relax shifts potentials over the alternating forest recorded in s.
//
// delta = min slack(i,j) over visitedL[i] ∧ ¬visitedR[j] with slack > 0.
// If no such pair exists it returns (0, false) and leaves potentials alone.
// Otherwise potentialL[i] −= delta for visited i, potentialR[j] += delta for
// visited j, and it returns (delta, true).
//
// Effect per pair class:
//   - visited×visited pairs: unchanged (−delta + delta);
//   - visitedL×unvisitedR pairs: slack drops by delta, never below 0;
//   - unvisitedL×visitedR pairs: slack grows by delta;
//   - s is a closed alternating forest (see closeForest), so every matched
//     edge has both ends visited or both unvisited.
//
// Slack rows have weight 0, so slack(i,j) = potentialR[j] − (−potentialL[i]);
// their smallest positive frontier slack is found by binary search over the
// sorted unvisited potentialR values instead of a row scan.
//
// Complexity: O(n·m + order·log m + m·log m).
func (e *Engine) relax(s *phaseScratch) (int64, bool) {
	var (
		delta int64
		found bool
		sl    int64
		i, j  int
		rows  = e.costs.Rows()
	)
	if s.frontier != nil {
		s.frontier = s.frontier[:0]
		for j = range s.visitedR {
			if !s.visitedR[j] {
				s.frontier = append(s.frontier, e.potentialR[j])
			}
		}
		slices.Sort(s.frontier)
	}

	for i = 0; i < len(s.visitedL); i++ {
		if !s.visitedL[i] {
			continue
		}
		if i >= rows {
			v := -e.potentialL[i]
			k, _ := slices.BinarySearch(s.frontier, v+1)
			if k < len(s.frontier) {
				if sl = s.frontier[k] - v; !found || sl < delta {
					delta, found = sl, true
				}
			}
			continue
		}
		for j = 0; j < len(s.visitedR); j++ {
			if s.visitedR[j] {
				continue
			}
			sl = e.slack(i, j)
			if sl <= 0 {
				continue
			}
			if !found || sl < delta {
				delta, found = sl, true
			}
		}
	}
	if !found {
		return 0, false
	}

	for i = 0; i < len(s.visitedL); i++ {
		if s.visitedL[i] {
			e.potentialL[i] -= delta
		}
	}
	for j = 0; j < len(s.visitedR); j++ {
		if s.visitedR[j] {
			e.potentialR[j] += delta
		}
	}

	return delta, true
}
