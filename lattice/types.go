// Package lattice: domain types and the two system interfaces consumed by
// the assemblers. Errors live in errors.go per the global conventions.
package lattice

import "github.com/katalvlaran/blockham/cxmat"

// Args carries the evaluation arguments forwarded verbatim to Hamiltonian
// and term evaluators. The calling convention is mutually exclusive: either
// Positional values or a Params mapping may be set, never both.
type Args struct {
	// Positional holds positional argument values, forwarded in order.
	Positional []any

	// Params holds named parameter values.
	Params map[string]any
}

// Validate enforces the mutually exclusive calling convention.
// Returns ErrArgConflict when both forms are supplied. Complexity: O(1).
func (a Args) Validate() error {
	if len(a.Positional) > 0 && len(a.Params) > 0 {
		return ErrArgConflict
	}

	return nil
}

// System is the explicit per-site view of a block-structured operator.
// Implementations must be read-only during assembly; the assemblers never
// mutate the graph or the evaluator.
type System interface {
	// NumSites returns the total number of sites n; sites are 0..n-1.
	NumSites() int

	// Neighbors enumerates the outgoing neighbor sites of the given site.
	// The returned slice must not be mutated by the caller.
	Neighbors(site int) []int

	// Hamiltonian evaluates the block coupling (to ← from). When to == from
	// the result is the square onsite block of the site; otherwise its shape
	// is (norb(to), norb(from)).
	Hamiltonian(to, from int, args Args) (*cxmat.Dense, error)
}

// SiteArray describes one site family: a contiguous run of sites sharing a
// single norb value and one source of evaluation logic.
type SiteArray struct {
	// Len is the number of sites in the family; always >= 1.
	Len int
}

// Subgraph is the index data of a term: the ordered family pair plus
// parallel per-instance local offsets. Instance i connects local site
// ToOffsets[i] of family ToArray to local site FromOffsets[i] of family
// FromArray; the two slices always have equal length.
type Subgraph struct {
	ToArray   int
	FromArray int

	ToOffsets   []int
	FromOffsets []int
}

// Term is one named onsite or hopping relation between two site families.
// A Hermitian term stores only one direction; its reverse (conjugate
// transposed) contribution is synthesized during assembly, never evaluated.
type Term struct {
	Subgraph Subgraph

	Hermitian bool
}

// SiteRange is one row of the precomputed orbital table: family k starts at
// global site FirstSite, every site carries Norb orbitals, and the family's
// first orbital sits at global offset FirstOrb.
type SiteRange struct {
	FirstSite int
	Norb      int
	FirstOrb  int
}

// VectorizedSystem is the compressed per-family view of the operator.
type VectorizedSystem interface {
	// SiteArrays returns the ordered family list partitioning the sites.
	SiteArrays() []SiteArray

	// Terms returns the declared term list.
	Terms() []Term

	// TermBlocks evaluates term i into a stack of per-instance blocks of
	// shape (instances, norb(to family), norb(from family)).
	TermBlocks(term int, args Args) (*cxmat.BlockStack, error)

	// SiteRanges returns the precomputed per-family orbital table, or nil
	// when the table is not known up front; the norb resolver then infers
	// block sizes from term evaluations.
	SiteRanges() []SiteRange

	// CellSize returns the site count of one repeated unit cell for a
	// periodic (lead-like) system, or 0 for a finite system.
	CellSize() int
}
