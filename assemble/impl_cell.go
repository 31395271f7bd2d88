// SPDX-License-Identifier: MIT

// Package assemble: cell restriction for periodic (lead-like) systems.
//
// An infinite system is declared as one repeating unit cell plus one
// interface layer. The boundary family b — the first site array not fully
// inside the declared cell — splits the family list: arrays below b form
// the fundamental cell, arrays at or above b form the interface toward the
// neighboring cell. Two derived views are assembled here:
//
//   - the cell Hamiltonian, square over the cell orbitals;
//   - the inter-cell hopping, rectangular from interface orbitals into cell
//     orbitals, with outgoing terms re-expressed relative to the
//     fundamental cell via conjugate transposition.
package assemble

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// cellBoundary locates the boundary family index for sys: the first family
// whose sites are not entirely contained in the declared cell, found by a
// binary search over the cumulative site counts.
// Errors: ErrNotPeriodic when no cell is declared, lattice.ErrCellSize when
// the declaration exceeds the system.
// Complexity: O(log families).
func cellBoundary(sys lattice.VectorizedSystem, t famTables) (int, error) {
	cell := sys.CellSize()
	if cell <= 0 {
		return 0, ErrNotPeriodic
	}
	total := t.siteOff[len(t.siteOff)-1]
	if cell >= total {
		return 0, fmt.Errorf("cellBoundary: cell of %d sites in a %d-site system: %w",
			cell, total, lattice.ErrCellSize)
	}

	// First family k with siteOff[k+1] > cell is the boundary.
	return sort.Search(t.families(), func(k int) bool { return t.siteOff[k+1] > cell }), nil
}

// cellSlice truncates the tables to the families below the boundary.
func cellSlice(t famTables, b int) famTables {
	return famTables{norbs: t.norbs[:b], orbOff: t.orbOff[:b+1], siteOff: t.siteOff[:b+1]}
}

// interfaceSlice re-bases the tables onto the families at or above the
// boundary. Orbital offsets are shifted so the interface's first orbital is
// column 0 of the rectangular output; site offsets stay global so shape
// diagnostics keep naming real sites.
func interfaceSlice(t famTables, b int) famTables {
	m := t.families()
	out := famTables{
		norbs:   t.norbs[b:],
		orbOff:  make([]int, m-b+1),
		siteOff: t.siteOff[b:],
	}
	for k := b; k <= m; k++ {
		out.orbOff[k-b] = t.orbOff[k] - t.orbOff[b]
	}

	return out
}

// cellHamiltonian assembles the vectorized system restricted to terms whose
// both endpoints lie entirely inside the cell (family index < boundary).
// Hermitian expansion applies as in the full assembly; the result is the
// square cell operator of shape (orbOff[b], orbOff[b]). Terms failing the
// membership test are never evaluated.
// Complexity: O(terms + Σ kept instance block volume).
func cellHamiltonian(sys lattice.VectorizedSystem, args lattice.Args, factory writerFactory) (cxmat.BlockWriter, error) {
	cache := make(map[int]*cxmat.BlockStack)
	tables, err := resolveNorbs(sys, cache, args)
	if err != nil {
		return nil, fmt.Errorf("cellHamiltonian: %w", err)
	}
	b, err := cellBoundary(sys, tables)
	if err != nil {
		return nil, fmt.Errorf("cellHamiltonian: %w", err)
	}
	entries, err := evalEntries(sys, cache, args, func(sub lattice.Subgraph) bool {
		return sub.ToArray < b && sub.FromArray < b
	})
	if err != nil {
		return nil, fmt.Errorf("cellHamiltonian: %w", err)
	}
	entries = expandHermitian(entries)

	cellT := cellSlice(tables, b)
	w, err := factory(cellT.totalOrbs(), cellT.totalOrbs())
	if err != nil {
		return nil, fmt.Errorf("cellHamiltonian: %w", err)
	}
	if err = assembleVec(entries, cellT, cellT, w); err != nil {
		return nil, fmt.Errorf("cellHamiltonian: %w", err)
	}

	return w, nil
}

// interCellHopping assembles the coupling between one cell and its
// neighbor: rows are cell orbitals, columns interface orbitals re-based to
// start at 0, shape (orbOff[b], total − orbOff[b]).
//
// Stored terms contribute in two categories, each exactly once and with no
// Hermitian expansion (the reverse of a cell↔interface coupling lives in
// the neighboring cell's copy of this matrix, not here):
//
//   - incoming (to < b ≤ from): taken as evaluated, from-family re-based.
//   - outgoing (from < b ≤ to): conjugate transposed so its endpoints swap
//     into the incoming orientation, then re-based the same way. This is
//     how a Hermitian term stored in the outgoing direction contributes its
//     synthesized mirror.
//
// Terms with both endpoints on one side are never evaluated.
// Complexity: O(terms + Σ kept instance block volume).
func interCellHopping(sys lattice.VectorizedSystem, args lattice.Args, factory writerFactory) (cxmat.BlockWriter, error) {
	cache := make(map[int]*cxmat.BlockStack)
	tables, err := resolveNorbs(sys, cache, args)
	if err != nil {
		return nil, fmt.Errorf("interCellHopping: %w", err)
	}
	b, err := cellBoundary(sys, tables)
	if err != nil {
		return nil, fmt.Errorf("interCellHopping: %w", err)
	}
	crosses := func(sub lattice.Subgraph) bool {
		return (sub.ToArray < b) != (sub.FromArray < b)
	}
	entries, err := evalEntries(sys, cache, args, crosses)
	if err != nil {
		return nil, fmt.Errorf("interCellHopping: %w", err)
	}

	// Re-express every crossing entry in the incoming orientation.
	oriented := make([]vecEntry, 0, len(entries))
	for _, e := range entries {
		if e.sub.ToArray < b {
			// Incoming: only the from side moves into interface coordinates.
			e.sub.FromArray -= b
			oriented = append(oriented, vecEntry{sub: e.sub, blocks: e.blocks})

			continue
		}
		// Outgoing: swap endpoints via conjugate transposition, then re-base.
		oriented = append(oriented, vecEntry{
			sub: lattice.Subgraph{
				ToArray:     e.sub.FromArray,
				FromArray:   e.sub.ToArray - b,
				ToOffsets:   e.sub.FromOffsets,
				FromOffsets: e.sub.ToOffsets,
			},
			blocks: e.blocks.ConjTranspose(),
		})
	}

	cellT := cellSlice(tables, b)
	ifaceT := interfaceSlice(tables, b)
	w, err := factory(cellT.totalOrbs(), ifaceT.totalOrbs())
	if err != nil {
		return nil, fmt.Errorf("interCellHopping: %w", err)
	}
	if err = assembleVec(oriented, cellT, ifaceT, w); err != nil {
		return nil, fmt.Errorf("interCellHopping: %w", err)
	}

	return w, nil
}
