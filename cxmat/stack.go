// SPDX-License-Identifier: MIT

// Package cxmat: BlockStack — a stack of equally-shaped complex blocks in one
// contiguous slice. This is the batched block carrier of the vectorized
// assembly path: one stack holds the evaluated blocks of every instance of a
// term, shape (n, r, c).
package cxmat

import (
	"fmt"
	"math/cmplx"
)

// BlockStack stores n blocks of shape r×c back to back in row-major order;
// block i occupies data[i*r*c : (i+1)*r*c].
type BlockStack struct {
	n, r, c int
	data    []complex128
}

// NewBlockStack creates a zeroed stack of n blocks of shape rows×cols.
// Stage 1 (Validate): all three dimensions must be >= 0.
// Stage 2 (Finalize): allocate the flat backing slice.
// Complexity: O(n*r*c).
func NewBlockStack(n, rows, cols int) (*BlockStack, error) {
	if n < 0 || rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &BlockStack{n: n, r: rows, c: cols, data: make([]complex128, n*rows*cols)}, nil
}

// StackFromBlocks builds a stack from explicit blocks, which must all share
// one shape; a mismatched block fails with ErrDimensionMismatch naming its
// position. Intended for fixtures and builders.
// Complexity: O(n*r*c).
func StackFromBlocks(blocks ...*Dense) (*BlockStack, error) {
	if len(blocks) == 0 {
		return NewBlockStack(0, 0, 0)
	}
	if blocks[0] == nil {
		return nil, fmt.Errorf("StackFromBlocks: block 0: %w", ErrNilMatrix)
	}
	s, err := NewBlockStack(len(blocks), blocks[0].r, blocks[0].c)
	if err != nil {
		return nil, err
	}
	for i, b := range blocks {
		if b == nil {
			return nil, fmt.Errorf("StackFromBlocks: block %d: %w", i, ErrNilMatrix)
		}
		if b.r != s.r || b.c != s.c {
			return nil, fmt.Errorf("StackFromBlocks: block %d is %d×%d, want %d×%d: %w",
				i, b.r, b.c, s.r, s.c, ErrDimensionMismatch)
		}
		copy(s.data[i*s.r*s.c:(i+1)*s.r*s.c], b.data)
	}

	return s, nil
}

// Len returns the number of blocks in the stack. Complexity: O(1).
func (s *BlockStack) Len() int { return s.n }

// BlockRows returns the per-block row count — the trailing-two-dimension
// shape the norb resolver reads. Complexity: O(1).
func (s *BlockStack) BlockRows() int { return s.r }

// BlockCols returns the per-block column count. Complexity: O(1).
func (s *BlockStack) BlockCols() int { return s.c }

// Block returns block i as a Dense view sharing the stack's backing storage.
// Mutating the view mutates the stack; assembly only reads.
// Complexity: O(1) — no copy.
func (s *BlockStack) Block(i int) (*Dense, error) {
	if i < 0 || i >= s.n {
		return nil, fmt.Errorf("BlockStack.Block(%d): %w", i, ErrIndexOutOfBounds)
	}

	return &Dense{r: s.r, c: s.c, data: s.data[i*s.r*s.c : (i+1)*s.r*s.c]}, nil
}

// SetBlock copies b into position i. The shape of b must match the stack.
// Complexity: O(r*c).
func (s *BlockStack) SetBlock(i int, b *Dense) error {
	if i < 0 || i >= s.n {
		return fmt.Errorf("BlockStack.SetBlock(%d): %w", i, ErrIndexOutOfBounds)
	}
	if err := ValidateNotNil(b); err != nil {
		return fmt.Errorf("BlockStack.SetBlock(%d): %w", i, err)
	}
	if err := ValidateShape(b, s.r, s.c); err != nil {
		return fmt.Errorf("BlockStack.SetBlock(%d): %w", i, err)
	}
	copy(s.data[i*s.r*s.c:(i+1)*s.r*s.c], b.data)

	return nil
}

// ConjTranspose returns a new stack holding the per-block conjugate transpose:
// out block i = conj(transpose(in block i)), shape (n, c, r). Entries are
// written directly from cmplx.Conj of the source data, keeping Hermitian
// synthesis bit-exact.
// Complexity: O(n*r*c).
func (s *BlockStack) ConjTranspose() *BlockStack {
	out := &BlockStack{n: s.n, r: s.c, c: s.r, data: make([]complex128, len(s.data))}
	var k, i, j int
	for k = 0; k < s.n; k++ { // fixed block order
		src := k * s.r * s.c
		dst := k * s.r * s.c // block volume unchanged under transposition
		for i = 0; i < s.r; i++ {
			for j = 0; j < s.c; j++ {
				out.data[dst+j*out.c+i] = cmplx.Conj(s.data[src+i*s.c+j])
			}
		}
	}

	return out
}
