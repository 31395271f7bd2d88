// SPDX-License-Identifier: MIT

// Package cxmat: shared domain types for assembly targets.
// This file contains ONLY domain-facing types; errors live in errors.go and
// the concrete containers in dense.go / coo.go / stack.go per the global
// conventions.
package cxmat

// BlockWriter is the narrow surface the assemblers write through. Both the
// dense and the sparse containers satisfy it, so one write loop serves both
// output forms; only the container decides how an accumulated entry is stored.
//
// Contract:
//   - Rows/Cols report the fixed output shape chosen at construction.
//   - AddBlock accumulates block b at (rowOff, colOff); repeated writes to
//     overlapping locations sum. Out-of-fit blocks are rejected with
//     ErrDimensionMismatch, never silently clipped.
//
// Complexity: AddBlock is O(b.Rows*b.Cols) for every implementation.
type BlockWriter interface {
	// Rows returns the number of rows in the target matrix.
	Rows() int

	// Cols returns the number of columns in the target matrix.
	Cols() int

	// AddBlock accumulates the dense block b with its (0,0) element placed
	// at (rowOff, colOff).
	AddBlock(rowOff, colOff int, b *Dense) error
}
