// SPDX-License-Identifier: MIT
// Package: assemble
//
// Purpose:
//   - Single canonical source of truth for the guards shared by the
//     assembly kernels: nil systems, subset index ranges, evaluated block
//     shapes against expected orbital counts.
//   - Return sentinel errors wrapped with the offending identity, so the
//     kernels stay lean and diagnostics stay uniform.
//
// All checks are pure and deterministic.

package assemble

import (
	"fmt"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// validateSystem guards the per-site facades.
// Errors: ErrNilSystem, lattice.ErrArgConflict. Complexity: O(1).
func validateSystem(sys lattice.System, args lattice.Args) error {
	if sys == nil {
		return ErrNilSystem
	}

	return args.Validate()
}

// validateVectorized guards the vectorized facades.
// Errors: ErrNilSystem, lattice.ErrArgConflict. Complexity: O(1).
func validateVectorized(sys lattice.VectorizedSystem, args lattice.Args) error {
	if sys == nil {
		return ErrNilSystem
	}

	return args.Validate()
}

// validateSubset ensures every caller-supplied site index lies in [0, n).
// The side tag ("to"/"from") travels in the wrapped context.
// Errors: ErrIndexOutOfRange. Complexity: O(len(sites)).
func validateSubset(side string, sites []int, n int) error {
	for i, s := range sites {
		if s < 0 || s >= n {
			return fmt.Errorf("%s_sites[%d] = %d with %d sites: %w", side, i, s, n, ErrIndexOutOfRange)
		}
	}

	return nil
}

// validateOnsiteShape ensures an evaluated onsite block is square.
// Errors: ErrShapeMismatch naming the site. Complexity: O(1).
func validateOnsiteShape(site int, b *cxmat.Dense) error {
	if b == nil {
		return fmt.Errorf("onsite block at site %d is nil: %w", site, ErrShapeMismatch)
	}
	if b.Rows() != b.Cols() {
		return fmt.Errorf("onsite block at site %d is %d×%d, want square: %w",
			site, b.Rows(), b.Cols(), ErrShapeMismatch)
	}

	return nil
}

// validateHoppingShape ensures an evaluated hopping block matches the
// expected (norb(to), norb(from)) shape.
// Errors: ErrShapeMismatch naming the site pair. Complexity: O(1).
func validateHoppingShape(to, from int, b *cxmat.Dense, toNorb, fromNorb int) error {
	if b == nil {
		return fmt.Errorf("hopping block (%d,%d) is nil: %w", to, from, ErrShapeMismatch)
	}
	if b.Rows() != toNorb || b.Cols() != fromNorb {
		return fmt.Errorf("hopping block (%d,%d) is %d×%d, want %d×%d: %w",
			to, from, b.Rows(), b.Cols(), toNorb, fromNorb, ErrShapeMismatch)
	}

	return nil
}
