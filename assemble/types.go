// SPDX-License-Identifier: MIT

// Package assemble: internal carrier types shared by the assembly kernels.
// Public domain types (systems, terms, args) live in the lattice package;
// this file holds only what the write loops pass among themselves.
package assemble

import (
	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// famTables bundles the per-family bookkeeping every vectorized kernel
// needs: block sizes, orbital offsets and site offsets, the latter two with
// one trailing sentinel entry equal to the respective totals.
type famTables struct {
	norbs   []int // per-family block size
	orbOff  []int // len = families+1; orbOff[k] = first orbital of family k
	siteOff []int // len = families+1; siteOff[k] = first global site of family k
}

// families returns the number of site families covered by the tables.
func (t famTables) families() int { return len(t.norbs) }

// totalOrbs returns the assembled dimension (the trailing sentinel).
func (t famTables) totalOrbs() int { return t.orbOff[len(t.orbOff)-1] }

// vecEntry is one batched write unit of the vectorized assembler: a
// subgraph plus the evaluated per-instance block stack. Hermitian expansion
// happens on []vecEntry before the write loop, so the loop itself stays
// conjugation-agnostic.
type vecEntry struct {
	sub       lattice.Subgraph
	blocks    *cxmat.BlockStack
	hermitian bool
}

// writerFactory builds the output container once the assembled shape is
// known; the dense and sparse facades differ only in the factory they pass.
type writerFactory func(rows, cols int) (cxmat.BlockWriter, error)
