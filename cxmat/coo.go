// SPDX-License-Identifier: MIT

// Package cxmat: COO — a coordinate-triplet sparse container.
// Deduplication is intentionally NOT performed on write: repeated (row, col)
// entries accumulate on conversion, which keeps the assembly write loops
// order-independent (summation at equal indices is associative).
package cxmat

import "fmt"

// COOOption configures a COO container at construction time.
type COOOption func(*COO)

// WithExplicitZeros disables value compaction: exact-zero entries are stored
// instead of being skipped. The effective matrix is identical either way;
// this only changes NNZ and the triplet listing.
func WithExplicitZeros() COOOption {
	return func(m *COO) { m.explicitZeros = true }
}

// COO is a sparse matrix in coordinate-triplet form with an explicit shape.
// Row, Col and Val are parallel slices; entry k contributes Val[k] at
// (Row[k], Col[k]). Repeated coordinates accumulate in ToDense.
type COO struct {
	r, c int // fixed shape, set at construction

	// Row, Col, Val are exported so callers can hand the triplets to an
	// external sparse solver without copying.
	Row []int
	Col []int
	Val []complex128

	explicitZeros bool // keep exact zeros instead of compacting them away
}

// NewCOO creates an empty rows×cols COO container.
// Stage 1 (Validate): rows and cols must be >= 0.
// Stage 2 (Finalize): return the empty container with triplet slices nil.
// Complexity: O(1).
func NewCOO(rows, cols int, opts ...COOOption) (*COO, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	m := &COO{r: rows, c: cols}
	for _, opt := range opts {
		opt(m) // apply in order; last-writer-wins
	}

	return m, nil
}

// Rows returns the number of rows of the target shape. Complexity: O(1).
func (m *COO) Rows() int { return m.r }

// Cols returns the number of columns of the target shape. Complexity: O(1).
func (m *COO) Cols() int { return m.c }

// NNZ returns the number of stored triplets (duplicates counted as stored).
// Complexity: O(1).
func (m *COO) NNZ() int { return len(m.Val) }

// Append stores one triplet (row, col, v). Exact zeros are skipped unless the
// container was built WithExplicitZeros; the omission never changes the
// effective matrix.
// Complexity: O(1) amortized.
func (m *COO) Append(row, col int, v complex128) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return fmt.Errorf("COO.Append(%d,%d): %w", row, col, ErrIndexOutOfBounds)
	}
	if v == 0 && !m.explicitZeros {
		return nil // value compaction
	}
	m.Row = append(m.Row, row)
	m.Col = append(m.Col, col)
	m.Val = append(m.Val, v)

	return nil
}

// AddBlock appends every element of block b with its (0,0) element placed at
// (rowOff, colOff). Duplicate coordinates are allowed and accumulate in
// ToDense, matching Dense.AddBlock semantics exactly.
// Complexity: O(b.Rows*b.Cols).
func (m *COO) AddBlock(rowOff, colOff int, b *Dense) error {
	if err := ValidateNotNil(b); err != nil {
		return fmt.Errorf("COO.AddBlock: %w", err)
	}
	if rowOff < 0 || colOff < 0 || rowOff+b.r > m.r || colOff+b.c > m.c {
		return fmt.Errorf("COO.AddBlock(%d,%d): %w", rowOff, colOff, ErrDimensionMismatch)
	}
	var i, j int
	var v complex128
	for i = 0; i < b.r; i++ { // fixed i→j order; output order is stable
		for j = 0; j < b.c; j++ {
			v = b.data[i*b.c+j]
			if v == 0 && !m.explicitZeros {
				continue // compacted; effective matrix unchanged
			}
			m.Row = append(m.Row, rowOff+i)
			m.Col = append(m.Col, colOff+j)
			m.Val = append(m.Val, v)
		}
	}

	return nil
}

// ToDense materializes the triplets into a Dense matrix, summing duplicates.
// Complexity: O(r*c + NNZ).
func (m *COO) ToDense() (*Dense, error) {
	out, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, err
	}
	for k := range m.Val {
		out.data[m.Row[k]*m.c+m.Col[k]] += m.Val[k]
	}

	return out, nil
}
