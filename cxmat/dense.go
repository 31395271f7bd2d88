// SPDX-License-Identifier: MIT

// Package cxmat: Dense — a concrete, row-major complex128 matrix storing
// elements in one flat slice for performance and cache friendliness.
package cxmat

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of complex128 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int          // number of rows and columns
	data []complex128 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols >= 0 (zero-sized is legal).
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrInvalidDimensions.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Validate dimensions; zero is allowed so empty subsets stay assemblable.
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	// Return initialized Dense over a fresh zeroed slice.
	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// FromRows builds a Dense from explicit row slices. All rows must share one
// length; a ragged input fails with ErrDimensionMismatch.
// Intended for small literals in fixtures and tests.
// Complexity: O(r*c).
func FromRows(rows [][]complex128) (*Dense, error) {
	// An empty literal maps onto the legal 0×0 matrix.
	if len(rows) == 0 {
		return NewDense(0, 0)
	}
	cols := len(rows[0])
	m, err := NewDense(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		// Reject ragged input early; silent truncation would corrupt blocks.
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d columns, want %d: %w",
				i, len(row), cols, ErrDimensionMismatch)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Complexity: O(r*c) zeroing.
func ZerosLike(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("ZerosLike: %w", err)
	}

	return NewDense(m.r, m.c)
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Add accumulates value v into (row, col).
// Complexity: O(1).
func (m *Dense) Add(row, col int, v complex128) error {
	idx, err := m.indexOf("Add", row, col)
	if err != nil {
		return err
	}
	m.data[idx] += v

	return nil
}

// AddBlock accumulates block b with its (0,0) element at (rowOff, colOff).
// Stage 1 (Validate): nil block and fit inside the receiver.
// Stage 2 (Execute): row-wise accumulate into the flat slice.
// Repeated writes to the same region sum, matching sparse duplicate
// accumulation semantics exactly.
// Complexity: O(b.Rows*b.Cols).
func (m *Dense) AddBlock(rowOff, colOff int, b *Dense) error {
	if err := ValidateNotNil(b); err != nil {
		return fmt.Errorf("Dense.AddBlock: %w", err)
	}
	if rowOff < 0 || colOff < 0 || rowOff+b.r > m.r || colOff+b.c > m.c {
		return denseErrorf("AddBlock", rowOff, colOff, ErrDimensionMismatch)
	}
	var i, j int
	for i = 0; i < b.r; i++ { // fixed row order
		dst := (rowOff+i)*m.c + colOff // flat offset of the destination row
		src := i * b.c                 // flat offset of the source row
		for j = 0; j < b.c; j++ {
			m.data[dst+j] += b.data[src+j]
		}
	}

	return nil
}

// SetBlock writes block b at (rowOff, colOff), overwriting prior content.
// Same validation as AddBlock. Complexity: O(b.Rows*b.Cols).
func (m *Dense) SetBlock(rowOff, colOff int, b *Dense) error {
	if err := ValidateNotNil(b); err != nil {
		return fmt.Errorf("Dense.SetBlock: %w", err)
	}
	if rowOff < 0 || colOff < 0 || rowOff+b.r > m.r || colOff+b.c > m.c {
		return denseErrorf("SetBlock", rowOff, colOff, ErrDimensionMismatch)
	}
	for i := 0; i < b.r; i++ {
		copy(m.data[(rowOff+i)*m.c+colOff:(rowOff+i)*m.c+colOff+b.c], b.data[i*b.c:(i+1)*b.c])
	}

	return nil
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	copyData := make([]complex128, len(m.data))
	copy(copyData, m.data)

	return &Dense{r: m.r, c: m.c, data: copyData}
}

// ConjTranspose returns a new matrix holding the conjugate transpose of m.
// The result is bit-exact: entries are written directly from cmplx.Conj of
// the source data, never recomputed through arithmetic.
// Complexity: O(r*c).
func (m *Dense) ConjTranspose() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ { // fixed i→j order for reproducibility
		for j = 0; j < m.c; j++ {
			out.data[j*out.c+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out
}

// Equal reports exact (bit-for-bit) equality of shape and every element.
// Complexity: O(r*c).
func (m *Dense) Equal(o *Dense) bool {
	if o == nil || m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if m.data[k] != o.data[k] {
			return false
		}
	}

	return true
}

// IsHermitian reports whether m equals its conjugate transpose exactly.
// Non-square matrices are never Hermitian. Complexity: O(r*c).
func (m *Dense) IsHermitian() bool {
	if m.r != m.c {
		return false
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = i; j < m.c; j++ { // upper triangle incl. diagonal suffices
			if m.data[i*m.c+j] != cmplx.Conj(m.data[j*m.c+i]) {
				return false
			}
		}
	}

	return true
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
