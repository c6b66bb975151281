// SPDX-License-Identifier: MIT

package matching

import (
	"fmt"
	"math"
)

// CostMatrix is an immutable n×m grid of non-negative edge weights stored
// row-major in a flat slice. Row i is left vertex i, column j is right vertex j.
type CostMatrix struct {
	rows, cols int
	data       []int64 // len == rows*cols
}

// NewCostMatrix validates costs and returns a private copy of it.
//
// Contract:
//   - at least one row and one column;
//   - every row has the same length m, and n ≤ m;
//   - every entry is ≥ 0 and ≤ CostLimit(m).
//
// Errors: ErrEmptyMatrix, ErrJaggedMatrix, ErrTooManyRows, ErrNegativeWeight,
// ErrWeightTooLarge (the last three with the offending position attached).
//
// Complexity: O(n·m) time and memory.
func NewCostMatrix(costs [][]int64) (*CostMatrix, error) {
	// Stage 1: shape.
	if len(costs) == 0 || len(costs[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	var (
		n = len(costs)
		m = len(costs[0])
	)
	var i, j int
	for i = 1; i < n; i++ {
		if len(costs[i]) != m {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrJaggedMatrix, i, len(costs[i]), m)
		}
	}
	if n > m {
		return nil, fmt.Errorf("%w: %d×%d", ErrTooManyRows, n, m)
	}

	// Stage 2: values, copied as we go.
	limit := CostLimit(m)
	data := make([]int64, n*m)
	for i = 0; i < n; i++ {
		for j = 0; j < m; j++ {
			if costs[i][j] < 0 {
				return nil, fmt.Errorf("%w: costs[%d][%d] = %d", ErrNegativeWeight, i, j, costs[i][j])
			}
			if costs[i][j] > limit {
				return nil, fmt.Errorf("%w: costs[%d][%d] = %d exceeds %d", ErrWeightTooLarge, i, j, costs[i][j], limit)
			}
			data[i*m+j] = costs[i][j]
		}
	}

	return &CostMatrix{rows: n, cols: m, data: data}, nil
}

// CostLimit returns the largest entry accepted for a matrix with m columns.
// For a maximum entry W, left potentials stay within [−W, W] and right
// potentials within [0, 2W], so slacks are at most 3W and Total, DualBound
// and every partial potential sum are at most 3m·W in magnitude;
// W ≤ MaxInt64/(4m) keeps all of them exact in int64.
func CostLimit(m int) int64 {
	if m < 1 {
		m = 1
	}

	return math.MaxInt64 / (4 * int64(m))
}

// Rows returns n, the number of left vertices.
func (c *CostMatrix) Rows() int { return c.rows }

// Cols returns m, the number of right vertices.
func (c *CostMatrix) Cols() int { return c.cols }

// At returns costs[i][j] or ErrVertexOutOfRange.
func (c *CostMatrix) At(i, j int) (int64, error) {
	if i < 0 || i >= c.rows || j < 0 || j >= c.cols {
		return 0, fmt.Errorf("%w: (%d,%d) in %d×%d", ErrVertexOutOfRange, i, j, c.rows, c.cols)
	}

	return c.data[i*c.cols+j], nil
}

// RowMax returns the largest entry of row i. Rows at or beyond n are the
// implicit zero slack rows and yield 0.
func (c *CostMatrix) RowMax(i int) int64 {
	if i >= c.rows {
		return 0
	}
	row := c.data[i*c.cols : (i+1)*c.cols]
	best := row[0]
	for _, v := range row[1:] {
		if v > best {
			best = v
		}
	}

	return best
}

// Slice returns a fresh [][]int64 copy of the matrix.
func (c *CostMatrix) Slice() [][]int64 {
	out := make([][]int64, c.rows)
	for i := range out {
		out[i] = append([]int64(nil), c.data[i*c.cols:(i+1)*c.cols]...)
	}

	return out
}

// weight returns w(i,j), treating rows ≥ n as all-zero slack rows.
// No bounds checks: hot path.
func (c *CostMatrix) weight(i, j int) int64 {
	if i >= c.rows {
		return 0
	}

	return c.data[i*c.cols+j]
}
