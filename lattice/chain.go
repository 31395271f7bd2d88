// Package lattice: deterministic chain constructors.
//
// Chain and VecChain build the same 1-D tight-binding chain in the two
// representations, which makes them the canonical cross-representation
// fixtures: assembling either must produce the identical matrix.
package lattice

import (
	"fmt"

	"github.com/katalvlaran/blockham/cxmat"
)

// Chain builds an n-site explicit chain 0—1—…—(n-1): every site carries the
// onsite block, every bond stores hop as the (i+1 ← i) block. The reverse
// blocks are synthesized as conjugate transposes on evaluation, so the
// operator is Hermitian whenever onsite is.
//
// Inputs:
//   - n: number of sites, >= 1.
//   - onsite: square norb×norb block; nil means zero-filled diagonal blocks,
//     in which case hop must be non-nil to define norb.
//   - hop: norb×norb bond block; nil means a disconnected chain.
//
// Errors: ErrEmptyFamily for n < 1, ErrBlockShape for inconsistent blocks.
// Complexity: O(n) sites + O(n-1) hoppings.
func Chain(n int, onsite, hop *cxmat.Dense) (*Graph, error) {
	norb, err := chainNorb(onsite, hop)
	if err != nil {
		return nil, fmt.Errorf("Chain: %w", err)
	}
	if n < 1 {
		return nil, fmt.Errorf("Chain: %d sites: %w", n, ErrEmptyFamily)
	}
	b := NewBuilder()
	for i := 0; i < n; i++ { // stable site order 0..n-1
		if _, err = b.AddSite(norb, onsite); err != nil {
			return nil, fmt.Errorf("Chain: %w", err)
		}
	}
	if hop != nil {
		for i := 0; i+1 < n; i++ { // stable bond order (1←0), (2←1), ...
			if err = b.AddHopping(i+1, i, hop); err != nil {
				return nil, fmt.Errorf("Chain: %w", err)
			}
		}
	}

	return b.Build(), nil
}

// VecChain builds the same n-site chain in batched form. A finite chain is
// one site family with one onsite term (when onsite != nil) and one
// Hermitian hopping term (when hop != nil). Declaring a unit cell with
// WithCellSize(c) splits the chain into a cell family of c sites and an
// interface family of n−c sites, with the bond crossing the boundary stored
// as its own term — the layout the cell-restricted assembly expects, since
// cell membership is decided per family.
//
// Errors: as Chain, plus Build's ErrCellSize.
// Complexity: O(n).
func VecChain(n int, onsite, hop *cxmat.Dense, opts ...BuildOption) (*VecGraph, error) {
	norb, err := chainNorb(onsite, hop)
	if err != nil {
		return nil, fmt.Errorf("VecChain: %w", err)
	}
	if n < 1 {
		return nil, fmt.Errorf("VecChain: %d sites: %w", n, ErrEmptyFamily)
	}
	var cfg buildConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	// Family bounds in global site coordinates: [0, n) for a finite chain,
	// [0, c) and [c, n) for a periodic one. Invalid cell declarations fall
	// through to Build, which rejects them.
	bounds := []int{0, n}
	if cfg.cellSize > 0 && cfg.cellSize < n {
		bounds = []int{0, cfg.cellSize, n}
	}

	vb := NewVecBuilder()
	fams := make([]int, len(bounds)-1)
	for k := range fams {
		if fams[k], err = vb.AddFamily(bounds[k+1]-bounds[k], norb); err != nil {
			return nil, fmt.Errorf("VecChain: %w", err)
		}
	}
	if onsite != nil {
		for k, fam := range fams {
			size := bounds[k+1] - bounds[k]
			offsets := make([]int, size)
			blocks := make([]*cxmat.Dense, size)
			for i := 0; i < size; i++ {
				offsets[i] = i
				blocks[i] = onsite
			}
			stack, serr := cxmat.StackFromBlocks(blocks...)
			if serr != nil {
				return nil, fmt.Errorf("VecChain: %w", serr)
			}
			if err = vb.AddOnsiteTerm(fam, offsets, stack); err != nil {
				return nil, fmt.Errorf("VecChain: %w", err)
			}
		}
	}
	if hop != nil && n > 1 {
		if len(fams) == 1 {
			err = chainHopTerm(vb, hop, fams[0], fams[0], 0, n-1, 0, 0)
		} else {
			c := bounds[1]
			// Bonds within the cell, the single boundary crossing, and
			// bonds within the interface, each as one term.
			err = chainHopTerm(vb, hop, fams[0], fams[0], 0, c-1, 0, 0)
			if err == nil {
				err = chainHopTerm(vb, hop, fams[1], fams[0], c-1, c, c, 0)
			}
			if err == nil {
				err = chainHopTerm(vb, hop, fams[1], fams[1], c, n-1, c, c)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("VecChain: %w", err)
		}
	}

	return vb.Build(opts...)
}

// chainHopTerm adds one Hermitian term covering the bonds (i+1 ← i) for i
// in [lo, hi), with the endpoint sites re-based into their families' local
// coordinates. An empty range adds nothing.
func chainHopTerm(vb *VecBuilder, hop *cxmat.Dense, to, from, lo, hi, toBase, fromBase int) error {
	if hi <= lo {
		return nil
	}
	k := hi - lo
	toOff := make([]int, k)
	fromOff := make([]int, k)
	blocks := make([]*cxmat.Dense, k)
	for i := 0; i < k; i++ {
		toOff[i] = lo + i + 1 - toBase
		fromOff[i] = lo + i - fromBase
		blocks[i] = hop
	}
	stack, err := cxmat.StackFromBlocks(blocks...)
	if err != nil {
		return err
	}

	return vb.AddHoppingTerm(to, from, toOff, fromOff, stack, true)
}

// chainNorb derives the common block size from whichever block is present
// and cross-checks the two when both are.
func chainNorb(onsite, hop *cxmat.Dense) (int, error) {
	switch {
	case onsite != nil:
		if err := cxmat.ValidateSquare(onsite); err != nil {
			return 0, fmt.Errorf("onsite block %d×%d is not square: %w",
				onsite.Rows(), onsite.Cols(), ErrBlockShape)
		}
		if hop != nil && (hop.Rows() != onsite.Rows() || hop.Cols() != onsite.Rows()) {
			return 0, fmt.Errorf("hop block %d×%d, onsite norb %d: %w",
				hop.Rows(), hop.Cols(), onsite.Rows(), ErrBlockShape)
		}

		return onsite.Rows(), nil
	case hop != nil:
		if err := cxmat.ValidateSquare(hop); err != nil {
			return 0, fmt.Errorf("hop block %d×%d is not square: %w",
				hop.Rows(), hop.Cols(), ErrBlockShape)
		}

		return hop.Rows(), nil
	default:
		return 0, fmt.Errorf("no block to derive norb from: %w", ErrBadNorb)
	}
}
