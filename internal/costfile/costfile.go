// SPDX-License-Identifier: MIT

// Package costfile reads cost-matrix documents and writes assignment
// reports for the lvmatch command.
//
// A document is YAML (JSON is accepted as a YAML subset):
//
//	left:  [alice, bob]          # optional row labels
//	right: [red, green, blue]    # optional column labels
//	costs:
//	  - [1, 2, 3]
//	  - [4, 5, 6]
package costfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoCosts indicates a document without a costs matrix.
	ErrNoCosts = errors.New("costfile: document has no costs")

	// ErrLabelCount indicates a label list whose length differs from the
	// matching matrix dimension.
	ErrLabelCount = errors.New("costfile: label count mismatch")
)

// Document is one cost-matrix input.
type Document struct {
	Left  []string  `yaml:"left,omitempty" json:"left,omitempty"`
	Right []string  `yaml:"right,omitempty" json:"right,omitempty"`
	Costs [][]int64 `yaml:"costs" json:"costs"`
}

// Decode reads a document from r and checks its labels against the matrix
// shape. Matrix validity itself is left to the matching package.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoCosts
		}
		return nil, fmt.Errorf("costfile: decode: %w", err)
	}
	if len(doc.Costs) == 0 {
		return nil, ErrNoCosts
	}
	if len(doc.Left) > 0 && len(doc.Left) != len(doc.Costs) {
		return nil, fmt.Errorf("%w: %d left labels for %d rows", ErrLabelCount, len(doc.Left), len(doc.Costs))
	}
	if len(doc.Right) > 0 && len(doc.Right) != len(doc.Costs[0]) {
		return nil, fmt.Errorf("%w: %d right labels for %d columns", ErrLabelCount, len(doc.Right), len(doc.Costs[0]))
	}

	return &doc, nil
}

// Load opens path and decodes it; "-" reads stdin.
func Load(path string) (*Document, error) {
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("costfile: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Complement returns c'[i][j] = maxC − c[i][j], where maxC is the largest
// entry of c. A maximum-weight matching on c' is a minimum-cost one on c,
// since every left-perfect matching uses exactly n edges. Entries stay
// non-negative. Rows of unequal length are copied as-is for the matching
// package to reject.
func Complement(c [][]int64) [][]int64 {
	var maxC int64
	for _, row := range c {
		for _, v := range row {
			if v > maxC {
				maxC = v
			}
		}
	}
	out := make([][]int64, len(c))
	for i, row := range c {
		out[i] = make([]int64, len(row))
		for j, v := range row {
			out[i][j] = maxC - v
		}
	}

	return out
}

// LeftLabel returns the label of row i or "" when unlabeled.
func (d *Document) LeftLabel(i int) string {
	if i < len(d.Left) {
		return d.Left[i]
	}

	return ""
}

// RightLabel returns the label of column j or "" when unlabeled.
func (d *Document) RightLabel(j int) string {
	if j < len(d.Right) {
		return d.Right[j]
	}

	return ""
}
