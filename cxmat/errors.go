// SPDX-License-Identifier: MIT
// Package cxmat: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the cxmat
// package. All operations return these sentinels and tests check them via
// errors.Is. No operation panics on user-triggered error conditions.

package cxmat

import "errors"

var (
	// ErrInvalidDimensions indicates that requested dimensions are negative.
	// Zero-sized matrices are legal: an empty site subset assembles into a
	// 0×k or k×0 matrix.
	ErrInvalidDimensions = errors.New("cxmat: dimensions must be >= 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside
	// the valid range. Public indexers (At/Set/Add) return this, not panic.
	ErrIndexOutOfBounds = errors.New("cxmat: index out of bounds")

	// ErrDimensionMismatch indicates incompatible dimensions between
	// operands, e.g. a block write that does not fit inside the target.
	ErrDimensionMismatch = errors.New("cxmat: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("cxmat: nil matrix")
)
