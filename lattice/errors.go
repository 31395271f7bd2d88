// Package lattice: sentinel error set for graph construction and evaluation.
package lattice

import "errors"

// Sentinel errors for lattice operations. All construction and evaluation
// paths return these sentinels; tests match them via errors.Is.
var (
	// ErrSiteOutOfRange indicates a site index outside [0, NumSites).
	ErrSiteOutOfRange = errors.New("lattice: site index out of range")

	// ErrBadNorb indicates a non-positive per-site block size.
	ErrBadNorb = errors.New("lattice: norb must be positive")

	// ErrBlockShape indicates a stored block whose dimensions disagree with
	// the declared norb of its endpoint site(s) or family(ies).
	ErrBlockShape = errors.New("lattice: block shape disagrees with norb")

	// ErrHoppingExists indicates a hopping was already stored for the pair
	// (in either direction); blocks are stored once, never overwritten.
	ErrHoppingExists = errors.New("lattice: hopping already defined for site pair")

	// ErrHoppingNotFound indicates an evaluation request for a pair with no
	// stored block in either direction.
	ErrHoppingNotFound = errors.New("lattice: no hopping stored for site pair")

	// ErrSelfHopping indicates an attempt to add a hopping from a site to
	// itself; onsite blocks belong to AddSite.
	ErrSelfHopping = errors.New("lattice: self-hopping not allowed, use the onsite block")

	// ErrArgConflict indicates both positional args and a parameter mapping
	// were supplied; the calling convention is mutually exclusive.
	ErrArgConflict = errors.New("lattice: positional args and params are mutually exclusive")

	// ErrEmptyFamily indicates a site family with no sites.
	ErrEmptyFamily = errors.New("lattice: site family must contain at least one site")

	// ErrFamilyOutOfRange indicates a family index outside the declared list.
	ErrFamilyOutOfRange = errors.New("lattice: family index out of range")

	// ErrTermShape indicates term index data whose parallel offset slices
	// disagree in length with each other or with the block stack.
	ErrTermShape = errors.New("lattice: term offsets and block stack lengths disagree")

	// ErrTermIndex indicates a term index outside the declared term list.
	ErrTermIndex = errors.New("lattice: term index out of range")

	// ErrCellSize indicates a declared unit-cell size that is not a positive
	// site count strictly smaller than the total number of sites.
	ErrCellSize = errors.New("lattice: invalid unit-cell size")
)
