// SPDX-License-Identifier: MIT
// Package assemble: sentinel error set.
// This file defines ONLY package-level sentinel errors. All assembly paths
// return these sentinels and tests check them via errors.Is; context (the
// offending site or site pair) is attached by wrapping at the call site.
// Every error is fail-fast: assembly aborts, nothing partial is returned.

package assemble

import "errors"

var (
	// ErrShapeMismatch indicates an evaluated onsite or hopping block whose
	// dimensions disagree with the orbital counts derived from site or
	// family metadata. The wrapped context names the offending site pair —
	// in the vectorized path, every offending instance pair.
	ErrShapeMismatch = errors.New("assemble: block shape mismatch")

	// ErrIndexOutOfRange indicates a caller-supplied explicit site subset
	// containing an index outside [0, NumSites).
	ErrIndexOutOfRange = errors.New("assemble: site index out of range")

	// ErrUnresolvableOrbitals indicates the norb resolver could not
	// determine the block size of some site families from any available
	// term — a graph with site families that have sites but no defined
	// terms is a structurally incomplete and unsupported configuration.
	ErrUnresolvableOrbitals = errors.New("assemble: cannot determine number of orbitals for some site families")

	// ErrNilSystem indicates a nil system was passed to a public facade.
	ErrNilSystem = errors.New("assemble: nil system")

	// ErrNotPeriodic indicates a cell-restricted assembly was requested on
	// a system that declares no unit cell (CellSize 0).
	ErrNotPeriodic = errors.New("assemble: system declares no unit cell")
)
