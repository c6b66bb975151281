// SPDX-License-Identifier: MIT

package matching

// phaseScratch is the per-phase state of BFS, DFS and relaxation.
// It is reset at the start of every phase; nothing in it survives a phase.
type phaseScratch struct {
	levels   []int  // BFS level of each left vertex, −1 = unreached
	visitedL []bool // left vertices expanded by the search
	visitedR []bool // right vertices reached over a tight edge
	guard    []bool // DFS visited guard, shared by all DFS calls of the phase
	queue    []int  // left vertices in discovery order
	head     int    // first queue entry not yet expanded after layer()

	allCols []int // 0..m−1, the scan list of every real row

	// Slack-row bookkeeping, nil when n = m. A slack row with potential p is
	// tight exactly to the columns whose potentialR is −p.
	groups   map[int64][]int     // potentialR value → columns, index order
	expanded map[int64]bool      // groups already scanned by BFS this phase
	cursor   map[slackCursor]int // DFS resume position per (potential, level)
	frontier []int64             // sorted potentialR of unvisited columns
}

// slackCursor identifies slack rows that share a tight group and a BFS level.
type slackCursor struct {
	potential int64
	level     int
}

// newPhaseScratch allocates scratch for `left` left and `right` right
// vertices. slackRows enables the group index used for padded inputs.
func newPhaseScratch(left, right int, slackRows bool) *phaseScratch {
	s := &phaseScratch{
		levels:   make([]int, left),
		visitedL: make([]bool, left),
		visitedR: make([]bool, right),
		guard:    make([]bool, left),
		queue:    make([]int, 0, left),
		allCols:  make([]int, right),
	}
	for j := range s.allCols {
		s.allCols[j] = j
	}
	if slackRows {
		s.groups = make(map[int64][]int)
		s.expanded = make(map[int64]bool)
		s.cursor = make(map[slackCursor]int)
		s.frontier = make([]int64, 0, right)
	}

	return s
}

// reset clears every field for a new phase without reallocating.
func (s *phaseScratch) reset() {
	var i int
	for i = range s.levels {
		s.levels[i] = -1
		s.visitedL[i] = false
		s.guard[i] = false
	}
	for i = range s.visitedR {
		s.visitedR[i] = false
	}
	s.queue = s.queue[:0]
	s.head = 0
}

// indexSlackGroups buckets columns by potentialR for this phase. Potentials
// do not move between BFS and DFS, so the buckets stay valid until relax.
func (s *phaseScratch) indexSlackGroups(potentialR []int64) {
	if s.groups == nil {
		return
	}
	clear(s.groups)
	clear(s.expanded)
	clear(s.cursor)
	for j, p := range potentialR {
		s.groups[p] = append(s.groups[p], j)
	}
}

// beginPhase clears the scratch and indexes slack groups for a new phase.
func (e *Engine) beginPhase() *phaseScratch {
	s := e.scratch
	s.reset()
	s.indexSlackGroups(e.potentialR)

	return s
}

// candidates returns the columns to scan from left vertex `from`.
// Real rows scan every column. All slack rows with the same potential have
// the same tight group, so only the first of them to be expanded in a phase
// scans it; by then every column of the group is visited and the others get
// nil.
func (e *Engine) candidates(s *phaseScratch, from int) []int {
	if from < e.costs.Rows() {
		return s.allCols
	}
	key := -e.potentialL[from]
	if s.expanded[key] {
		return nil
	}
	s.expanded[key] = true

	return s.groups[key]
}

// countVisited returns how many left and right vertices are marked visited.
func (s *phaseScratch) countVisited() (left, right int) {
	for _, v := range s.visitedL {
		if v {
			left++
		}
	}
	for _, v := range s.visitedR {
		if v {
			right++
		}
	}

	return left, right
}

// layer runs the level-synchronous BFS over the tight subgraph.
//
// Steps:
//  1. Seed the queue with every free left vertex at level 0.
//  2. Dequeue a whole level at a time. A left vertex already expanded is
//     skipped; otherwise mark it visited and scan right vertices in index
//     order. For each tight edge to an unvisited right vertex `to`:
//     a. mark visitedR[to];
//     b. free `to` ⇒ reachedFree = true (the level is still finished);
//     c. matched `to` whose partner has no level yet ⇒ partner gets
//     level+1 and is enqueued.
//  3. Stop when the queue is drained or a level reached a free vertex.
//
// Left vertices enqueued for the next level but not expanded stay in the
// queue at s.head for closeForest.
//
// Complexity: O(n·m + order) plus O(m) per distinct slack potential.
func (e *Engine) layer(s *phaseScratch) bool {
	var (
		from, to, partner int
		head, levelEnd    int
		reachedFree       bool
	)
	for from = 0; from < len(e.pairL); from++ {
		if e.pairL[from] == Unmatched {
			s.levels[from] = 0
			s.queue = append(s.queue, from)
		}
	}

	for head < len(s.queue) && !reachedFree {
		levelEnd = len(s.queue) // everything currently queued shares one level
		for ; head < levelEnd; head++ {
			from = s.queue[head]
			if s.visitedL[from] {
				continue
			}
			s.visitedL[from] = true

			for _, to = range e.candidates(s, from) {
				if s.visitedR[to] || !e.isTight(from, to) {
					continue
				}
				s.visitedR[to] = true

				partner = e.pairR[to]
				if partner == Unmatched {
					reachedFree = true
					continue
				}
				if s.levels[partner] == -1 {
					s.levels[partner] = s.levels[from] + 1
					s.queue = append(s.queue, partner)
				}
			}
		}
	}
	s.head = head

	return reachedFree
}

// closeForest finishes the exploration layer stopped early, so that the
// visited sets describe the whole tight alternating forest rooted at the
// free left vertices:
//
//	visitedR[j] ∧ pairR[j] = i  ⇒  visitedL[i]
//	visitedL[i] ∧ tight(i,j)    ⇒  visitedR[j]
//
// Partners discovered here get no level, so DFS never descends into them and
// keeps to the shortest layers computed by layer.
//
// Complexity: as layer.
func (e *Engine) closeForest(s *phaseScratch) {
	var from, to, partner int
	for ; s.head < len(s.queue); s.head++ {
		from = s.queue[s.head]
		if s.visitedL[from] {
			continue
		}
		s.visitedL[from] = true

		for _, to = range e.candidates(s, from) {
			if s.visitedR[to] || !e.isTight(from, to) {
				continue
			}
			s.visitedR[to] = true
			// each matched right vertex is reached once, so its partner is queued once
			if partner = e.pairR[to]; partner != Unmatched {
				s.queue = append(s.queue, partner)
			}
		}
	}
}
