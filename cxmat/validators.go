// SPDX-License-Identifier: MIT
// Package: cxmat
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Keep assemblers minimal by delegating nil/shape checks here.
//   - Return plain sentinel errors so call sites can wrap uniformly.
//
// All checks are pure, deterministic and allocate nothing.

package cxmat

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols). Complexity: O(1).
func ValidateSquare(m *Dense) error {
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateShape checks that m has exactly the given shape. Complexity: O(1).
func ValidateShape(m *Dense, rows, cols int) error {
	if m.r != rows || m.c != cols {
		return validatorErrorf("ValidateShape", ErrDimensionMismatch)
	}

	return nil
}
