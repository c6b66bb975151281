// SPDX-License-Identifier: MIT

// Package matching computes maximum-weight perfect matchings in complete
// weighted bipartite graphs using the Kuhn–Munkres (Hungarian) method.
//
// 🚀 What does it solve?
//
//	Given an n×m matrix of non-negative integer weights between a left vertex
//	set L (|L| = n) and a right vertex set R (|R| = m, n ≤ m), find an
//	assignment of every left vertex to a distinct right vertex that maximizes
//	the total weight. Typical uses:
//	  • task ↔ worker / job ↔ machine assignment
//	  • track ↔ detection association
//	  • any "pick one per row, distinct columns" optimization
//
// ✨ How it works:
//
//	The engine keeps a dual potential per vertex (potentialL, potentialR) such
//	that potentialL[i] + potentialR[j] ≥ w(i,j) for every edge. Edges where
//	equality holds are "tight"; only tight edges are used for matching.
//	Every phase:
//	  1. BFS layers the tight subgraph from all free left vertices
//	     (level by level, like Hopcroft–Karp / Dinic).
//	  2. If a free right vertex was reached, level-respecting DFS augments
//	     along vertex-disjoint shortest augmenting paths.
//	  3. Potentials of the explored alternating forest are shifted by the
//	     minimal frontier slack, exposing new tight edges while keeping
//	     dual feasibility and the tightness of every matched edge.
//	The loop stops once every left vertex is matched. At that point the
//	matching is optimal (complementary slackness).
//
//	Rectangular inputs (n < m) are completed internally with m−n zero-weight
//	slack rows, so that unmatched right vertices end with a consistent dual
//	certificate. Slack rows never appear in results.
//
// ⚙️ Usage:
//
//	e, err := matching.New([][]int64{
//		{3, 1, 2},
//		{4, 2, 5},
//		{5, 3, 1},
//	})
//	if err != nil {
//		// ErrEmptyMatrix, ErrJaggedMatrix, ErrTooManyRows, ErrNegativeWeight,
//		// ErrWeightTooLarge
//	}
//	total, err := e.Solve() // 11
//	for _, p := range e.Pairs() {
//		fmt.Println(p.Left, p.Right, p.Cost)
//	}
//
// Observability hooks (WithOnPhase, WithOnRelax, WithOnAugment) expose every
// phase without the package doing any logging of its own.
//
// Performance:
//
//   - Time:   O(n·m + m·log m) per phase, at most O(m) phases between two
//     augmentations. Slack rows are handled per potential group, so a 1×m
//     input costs O(m log m), not O(m²).
//   - Memory: O(n·m) for the cost copy plus O(m) scratch.
//
// An *Engine is not safe for concurrent use; distinct engines are independent.
package matching
