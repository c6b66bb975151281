// SPDX-License-Identifier: MIT

package matching

// augment searches a level-respecting augmenting path from left vertex `from`
// and commits it on success.
//
// For every right vertex `to` with a tight edge from `from`, in index order:
//   - `to` free ⇒ match (from, to);
//   - `to` matched to p with levels[p] = levels[from]+1 and augment(p)
//     succeeded ⇒ p was re-homed, so match (from, to).
//
// s.guard is shared by all calls of a phase, so every left vertex is entered
// at most once per phase and the committed paths are vertex-disjoint.
//
// Complexity: O(m) per entered real row, O(n·m + order + m·levels) per phase
// in total.
func (e *Engine) augment(from int, s *phaseScratch) bool {
	if s.guard[from] {
		return false
	}
	s.guard[from] = true

	if from >= e.costs.Rows() {
		return e.augmentSlack(from, s)
	}
	var to int
	for to = 0; to < len(e.pairR); to++ {
		if e.isTight(from, to) && e.extend(from, to, s) {
			return true
		}
	}

	return false
}

// augmentSlack scans the tight group of slack row `from`, resuming where the
// previous slack row with the same potential and level stopped. Columns
// before the cursor cannot serve this row either: each is held by a vertex
// already guarded this phase, or its partner is not on the next level.
func (e *Engine) augmentSlack(from int, s *phaseScratch) bool {
	key := slackCursor{potential: e.potentialL[from], level: s.levels[from]}
	cols := s.groups[-key.potential]
	for i := s.cursor[key]; i < len(cols); i++ {
		s.cursor[key] = i + 1
		if e.extend(from, cols[i], s) {
			return true
		}
	}

	return false
}

// extend matches `from` with the tight right vertex `to` if `to` is free or
// its partner can be re-homed one level deeper.
func (e *Engine) extend(from, to int, s *phaseScratch) bool {
	partner := e.pairR[to]
	if partner == Unmatched ||
		(s.levels[partner] == s.levels[from]+1 && e.augment(partner, s)) {
		e.pairL[from] = to
		e.pairR[to] = from

		return true
	}

	return false
}

// augmentAll runs augment from every free left vertex in index order and
// returns (paths committed, of which rooted at real rows).
func (e *Engine) augmentAll(s *phaseScratch) (total, real int) {
	var u int
	for u = 0; u < len(e.pairL); u++ {
		if e.pairL[u] != Unmatched || !e.augment(u, s) {
			continue
		}
		total++
		if u < e.costs.Rows() {
			real++
			e.opts.OnAugment(u, e.pairL[u])
		}
	}

	return total, real
}
