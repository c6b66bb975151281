// Package lvmatch is a weighted bipartite assignment toolkit: an exact
// maximum-weight matching engine plus the command-line plumbing to feed it
// cost matrices and read back assignments.
//
// 🚀 What is lvmatch?
//
//	A small, deterministic library and CLI that brings together:
//		• matching/  – Kuhn–Munkres with dual potentials and
//		  level-synchronous (Hopcroft–Karp style) augmentation
//		• cmd/lvmatch – `solve` and `version` commands (cobra)
//		• internal/config    – defaults < YAML < LVMATCH_* env < flags (koanf)
//		• internal/costfile  – YAML/JSON cost documents and reports
//		• internal/logging   – zap logger with rotating file sink
//		• internal/telemetry – Prometheus counters fed by engine hooks
//
// ✨ Why choose lvmatch?
//
//   - Exact – integer weights, optimality certified by the dual potentials
//   - Inspectable – Step through phases, read potentials, slack and hooks
//   - Rectangular-friendly – n ≤ m, every row matched
//
// Quick ASCII example:
//
//	      j0 j1 j2
//	r0 [   3  1  2 ]
//	r1 [   4  2  5 ]     ⇒  r0→j1, r1→j2, r2→j0   total 11
//	r2 [   5  3  1 ]
//
//	go get github.com/katalvlaran/lvmatch/matching
package lvmatch
