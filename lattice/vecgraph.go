// Package lattice: VecBuilder and VecGraph — the stored-block implementation
// of the compressed VectorizedSystem view.
package lattice

import (
	"fmt"

	"github.com/katalvlaran/blockham/cxmat"
)

// BuildOption configures VecBuilder.Build. Safe to apply repeatedly.
type BuildOption func(*buildConfig)

// buildConfig stores the effective Build configuration; fields are
// unexported, public entry points accept ...BuildOption.
type buildConfig struct {
	cellSize   int
	omitRanges bool
}

// WithCellSize declares the site count of one repeated unit cell, turning
// the built graph into a periodic (lead-like) system. The cell must be a
// positive site count strictly smaller than the total; Build validates it.
func WithCellSize(sites int) BuildOption {
	return func(c *buildConfig) { c.cellSize = sites }
}

// WithoutSiteRanges suppresses the precomputed orbital table even when all
// family norbs are known, forcing the assemblers' norb resolver onto its
// lazy inference path. Primarily useful in tests and benchmarks.
func WithoutSiteRanges() BuildOption {
	return func(c *buildConfig) { c.omitRanges = true }
}

// VecBuilder accumulates site families and batched terms and produces an
// immutable VecGraph. A family may be declared with norb 0 (unknown); its
// block size is then inferred from term evaluations by the resolver, and
// term blocks touching it are validated against the first shape observed.
type VecBuilder struct {
	arrays []SiteArray
	norbs  []int // per family; 0 = unknown until a term pins it
	terms  []Term
	blocks []*cxmat.BlockStack
}

// NewVecBuilder creates an empty vectorized-graph builder. Complexity: O(1).
func NewVecBuilder() *VecBuilder {
	return &VecBuilder{}
}

// AddFamily appends one site family of n sites sharing the given norb and
// returns its index. norb 0 declares the block size unknown; negative norb
// fails with ErrBadNorb, n < 1 with ErrEmptyFamily.
// Complexity: O(1).
func (b *VecBuilder) AddFamily(n, norb int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("AddFamily: %d sites: %w", n, ErrEmptyFamily)
	}
	if norb < 0 {
		return 0, fmt.Errorf("AddFamily: norb %d: %w", norb, ErrBadNorb)
	}
	id := len(b.arrays)
	b.arrays = append(b.arrays, SiteArray{Len: n})
	b.norbs = append(b.norbs, norb)

	return id, nil
}

// AddOnsiteTerm declares a self-term of one family: instance i places
// blocks.Block(i) on the diagonal block of local site offsets[i].
// Errors: ErrFamilyOutOfRange, ErrTermShape, ErrSiteOutOfRange, ErrBlockShape.
// Complexity: O(len(offsets)).
func (b *VecBuilder) AddOnsiteTerm(family int, offsets []int, blocks *cxmat.BlockStack) error {
	return b.addTerm(family, family, offsets, offsets, blocks, false)
}

// AddHoppingTerm declares a hopping term between two families: instance i
// couples local site toOffsets[i] of family to with local site
// fromOffsets[i] of family from. When hermitian is set, only this direction
// is stored; the assembler synthesizes the conjugate-transposed reverse.
// Errors: ErrFamilyOutOfRange, ErrTermShape, ErrSiteOutOfRange, ErrBlockShape.
// Complexity: O(instances).
func (b *VecBuilder) AddHoppingTerm(to, from int, toOffsets, fromOffsets []int, blocks *cxmat.BlockStack, hermitian bool) error {
	return b.addTerm(to, from, toOffsets, fromOffsets, blocks, hermitian)
}

// addTerm is the shared validation and storage path of both term kinds.
func (b *VecBuilder) addTerm(to, from int, toOff, fromOff []int, blocks *cxmat.BlockStack, hermitian bool) error {
	if to < 0 || to >= len(b.arrays) || from < 0 || from >= len(b.arrays) {
		return fmt.Errorf("addTerm(%d,%d): %w", to, from, ErrFamilyOutOfRange)
	}
	if blocks == nil {
		return fmt.Errorf("addTerm(%d,%d): %w", to, from, cxmat.ErrNilMatrix)
	}
	if len(toOff) != len(fromOff) || blocks.Len() != len(toOff) {
		return fmt.Errorf("addTerm(%d,%d): %d to-offsets, %d from-offsets, %d blocks: %w",
			to, from, len(toOff), len(fromOff), blocks.Len(), ErrTermShape)
	}
	for i, o := range toOff {
		if o < 0 || o >= b.arrays[to].Len {
			return fmt.Errorf("addTerm(%d,%d): to-offset %d at instance %d: %w", to, from, o, i, ErrSiteOutOfRange)
		}
	}
	for i, o := range fromOff {
		if o < 0 || o >= b.arrays[from].Len {
			return fmt.Errorf("addTerm(%d,%d): from-offset %d at instance %d: %w", to, from, o, i, ErrSiteOutOfRange)
		}
	}
	// Pin unknown norbs on first contact; contradict known ones never.
	if err := b.pinNorb(to, blocks.BlockRows()); err != nil {
		return fmt.Errorf("addTerm(%d,%d): to side: %w", to, from, err)
	}
	if err := b.pinNorb(from, blocks.BlockCols()); err != nil {
		return fmt.Errorf("addTerm(%d,%d): from side: %w", to, from, err)
	}
	b.terms = append(b.terms, Term{
		Subgraph:  Subgraph{ToArray: to, FromArray: from, ToOffsets: toOff, FromOffsets: fromOff},
		Hermitian: hermitian,
	})
	b.blocks = append(b.blocks, blocks)

	return nil
}

// pinNorb records the observed block dimension for a family, or rejects a
// contradiction with ErrBlockShape.
func (b *VecBuilder) pinNorb(family, dim int) error {
	if b.norbs[family] == 0 {
		b.norbs[family] = dim

		return nil
	}
	if b.norbs[family] != dim {
		return fmt.Errorf("family %d has norb %d, block says %d: %w",
			family, b.norbs[family], dim, ErrBlockShape)
	}

	return nil
}

// Build seals the builder into an immutable VecGraph. The precomputed
// orbital table is emitted when every family norb is known and
// WithoutSiteRanges was not requested; a declared cell size is validated
// against the total site count.
// Errors: ErrCellSize. Complexity: O(families + terms).
func (b *VecBuilder) Build(opts ...BuildOption) (*VecGraph, error) {
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg) // apply in order; last-writer-wins
	}
	total := 0
	for _, a := range b.arrays {
		total += a.Len
	}
	// A declared cell must leave at least one interface site outside it;
	// cellSize 0 simply means a finite system.
	if cfg.cellSize < 0 || cfg.cellSize >= total && cfg.cellSize != 0 {
		return nil, fmt.Errorf("Build: cell of %d sites in a %d-site system: %w", cfg.cellSize, total, ErrCellSize)
	}

	g := &VecGraph{
		arrays:   b.arrays,
		norbs:    b.norbs,
		terms:    b.terms,
		blocks:   b.blocks,
		cellSize: cfg.cellSize,
	}
	if !cfg.omitRanges {
		g.ranges = buildSiteRanges(b.arrays, b.norbs)
	}
	b.arrays, b.norbs, b.terms, b.blocks = nil, nil, nil, nil

	return g, nil
}

// buildSiteRanges derives the per-family orbital table, or nil when any
// family norb is still unknown. Complexity: O(families).
func buildSiteRanges(arrays []SiteArray, norbs []int) []SiteRange {
	ranges := make([]SiteRange, len(arrays))
	site, orb := 0, 0
	for k, a := range arrays {
		if norbs[k] == 0 {
			return nil // unknown block size: leave resolution to the assembler
		}
		ranges[k] = SiteRange{FirstSite: site, Norb: norbs[k], FirstOrb: orb}
		site += a.Len
		orb += a.Len * norbs[k]
	}

	return ranges
}

// VecGraph is an immutable stored-block vectorized system.
type VecGraph struct {
	arrays   []SiteArray
	norbs    []int
	terms    []Term
	blocks   []*cxmat.BlockStack
	ranges   []SiteRange
	cellSize int
}

// SiteArrays returns the ordered family list. Complexity: O(1).
func (g *VecGraph) SiteArrays() []SiteArray { return g.arrays }

// Terms returns the declared term list. Complexity: O(1).
func (g *VecGraph) Terms() []Term { return g.terms }

// TermBlocks returns the stored block stack of term i.
// Errors: ErrArgConflict, ErrTermIndex. Complexity: O(1) — no copy.
func (g *VecGraph) TermBlocks(i int, args Args) (*cxmat.BlockStack, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(g.blocks) {
		return nil, fmt.Errorf("TermBlocks(%d): %w", i, ErrTermIndex)
	}

	return g.blocks[i], nil
}

// SiteRanges returns the precomputed orbital table, or nil when a family
// norb was left unknown or the table was suppressed at Build time.
// Complexity: O(1).
func (g *VecGraph) SiteRanges() []SiteRange { return g.ranges }

// CellSize returns the declared unit-cell site count, 0 for finite systems.
// Complexity: O(1).
func (g *VecGraph) CellSize() int { return g.cellSize }
