// SPDX-License-Identifier: MIT

// Package assemble: the vectorized (batched per-family) assembler.
//
// The unit of work here is a vecEntry: one subgraph plus the stack of
// evaluated per-instance blocks. Hermitian-conjugate duplication is a
// preprocessing step over the entry list (expandHermitian) — the write loop
// itself is conjugation-agnostic and simply places every entry's blocks at
// the orbital offsets its subgraph dictates.
package assemble

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// evalEntries evaluates every term accepted by keep into a vecEntry,
// reusing and populating the shared per-call cache. Terms rejected by keep
// are never evaluated — an optimization, not a semantic requirement, since
// their blocks would not be written anyway.
// Complexity: O(terms) index work plus one evaluator call per kept,
// uncached term.
func evalEntries(sys lattice.VectorizedSystem, cache map[int]*cxmat.BlockStack, args lattice.Args, keep func(lattice.Subgraph) bool) ([]vecEntry, error) {
	terms := sys.Terms()
	entries := make([]vecEntry, 0, len(terms))
	for ti, term := range terms {
		if keep != nil && !keep(term.Subgraph) {
			continue
		}
		blocks, ok := cache[ti]
		if !ok {
			var err error
			if blocks, err = sys.TermBlocks(ti, args); err != nil {
				return nil, fmt.Errorf("evalEntries: term %d: %w", ti, err)
			}
			cache[ti] = blocks
		}
		entries = append(entries, vecEntry{sub: term.Subgraph, blocks: blocks, hermitian: term.Hermitian})
	}

	return entries, nil
}

// expandHermitian appends, for every Hermitian entry, a synthesized reverse
// entry: endpoints swapped, offset slices swapped, block stack conjugate
// transposed. The appended entries carry hermitian=false so a second
// expansion pass would be a no-op on them.
// Complexity: O(Σ instance block volume over Hermitian entries).
func expandHermitian(entries []vecEntry) []vecEntry {
	out := entries
	for _, e := range entries { // iterate the original list only
		if !e.hermitian {
			continue
		}
		out = append(out, vecEntry{
			sub: lattice.Subgraph{
				ToArray:     e.sub.FromArray,
				FromArray:   e.sub.ToArray,
				ToOffsets:   e.sub.FromOffsets,
				FromOffsets: e.sub.ToOffsets,
			},
			blocks: e.blocks.ConjTranspose(),
		})
	}

	return out
}

// assembleVec validates and writes every entry into w. The to and from
// sides carry separate famTables so cell-restricted (rectangular) regions
// assemble through the same loop as full square systems.
//
// Implementation:
//   - Stage 1 (validate): per entry, the stack's trailing two dimensions
//     must equal (norb(to family), norb(from family)); a mismatch reports
//     EVERY offending (to_site, from_site) instance pair, computed by
//     adding the family's first global site index to each local offset.
//   - Stage 2 (write): instance i lands at row offset
//     orbOff[to] + norb(to)*toOffsets[i] and the symmetric column offset.
//
// Errors: ErrShapeMismatch, ErrIndexOutOfRange (malformed subgraph data).
// Complexity: O(Σ instance block volume).
func assembleVec(entries []vecEntry, toT, fromT famTables, w cxmat.BlockWriter) error {
	for _, e := range entries {
		if e.sub.ToArray < 0 || e.sub.ToArray >= toT.families() {
			return fmt.Errorf("assembleVec: to family %d of %d: %w", e.sub.ToArray, toT.families(), ErrIndexOutOfRange)
		}
		if e.sub.FromArray < 0 || e.sub.FromArray >= fromT.families() {
			return fmt.Errorf("assembleVec: from family %d of %d: %w", e.sub.FromArray, fromT.families(), ErrIndexOutOfRange)
		}
		if len(e.sub.ToOffsets) != e.blocks.Len() || len(e.sub.FromOffsets) != e.blocks.Len() {
			return fmt.Errorf("assembleVec: %d blocks with %d/%d instance offsets: %w",
				e.blocks.Len(), len(e.sub.ToOffsets), len(e.sub.FromOffsets), ErrIndexOutOfRange)
		}
		toNorb := toT.norbs[e.sub.ToArray]
		fromNorb := fromT.norbs[e.sub.FromArray]
		if e.blocks.BlockRows() != toNorb || e.blocks.BlockCols() != fromNorb {
			return shapeMismatchError(e, toT, fromT, toNorb, fromNorb)
		}
		toLen := toT.siteOff[e.sub.ToArray+1] - toT.siteOff[e.sub.ToArray]
		fromLen := fromT.siteOff[e.sub.FromArray+1] - fromT.siteOff[e.sub.FromArray]
		for i := 0; i < e.blocks.Len(); i++ {
			lt, lf := e.sub.ToOffsets[i], e.sub.FromOffsets[i]
			if lt < 0 || lt >= toLen || lf < 0 || lf >= fromLen {
				return fmt.Errorf("assembleVec: instance %d offsets (%d,%d) in families of %d/%d sites: %w",
					i, lt, lf, toLen, fromLen, ErrIndexOutOfRange)
			}
			b, err := e.blocks.Block(i)
			if err != nil {
				return fmt.Errorf("assembleVec: %w", err)
			}
			rowOff := toT.orbOff[e.sub.ToArray] + toNorb*lt
			colOff := fromT.orbOff[e.sub.FromArray] + fromNorb*lf
			if err = w.AddBlock(rowOff, colOff, b); err != nil {
				return fmt.Errorf("assembleVec: instance %d: %w", i, err)
			}
		}
	}

	return nil
}

// shapeMismatchError builds the diagnostic listing every offending
// (to_site, from_site) pair of the entry, in global site indices.
func shapeMismatchError(e vecEntry, toT, fromT famTables, toNorb, fromNorb int) error {
	var pairs strings.Builder
	for i := 0; i < e.blocks.Len(); i++ {
		if i > 0 {
			pairs.WriteString(", ")
		}
		fmt.Fprintf(&pairs, "(%d,%d)",
			toT.siteOff[e.sub.ToArray]+e.sub.ToOffsets[i],
			fromT.siteOff[e.sub.FromArray]+e.sub.FromOffsets[i])
	}

	return fmt.Errorf("assembleVec: blocks are %d×%d, want %d×%d for site pairs [%s]: %w",
		e.blocks.BlockRows(), e.blocks.BlockCols(), toNorb, fromNorb, pairs.String(), ErrShapeMismatch)
}

// vectorizedSubmatrix assembles the full matrix of a vectorized system:
// resolve norbs, evaluate every term, expand Hermitian duplicates, write.
// Returns the filled writer plus the resolved tables (the facades derive
// per-site norb companions from them).
// Complexity: O(terms + Σ instance block volume).
func vectorizedSubmatrix(sys lattice.VectorizedSystem, args lattice.Args, factory writerFactory) (cxmat.BlockWriter, famTables, error) {
	cache := make(map[int]*cxmat.BlockStack)
	tables, err := resolveNorbs(sys, cache, args)
	if err != nil {
		return nil, famTables{}, fmt.Errorf("vectorizedSubmatrix: %w", err)
	}
	entries, err := evalEntries(sys, cache, args, nil)
	if err != nil {
		return nil, famTables{}, fmt.Errorf("vectorizedSubmatrix: %w", err)
	}
	entries = expandHermitian(entries)

	total := tables.totalOrbs()
	w, err := factory(total, total)
	if err != nil {
		return nil, famTables{}, fmt.Errorf("vectorizedSubmatrix: %w", err)
	}
	if err = assembleVec(entries, tables, tables, w); err != nil {
		return nil, famTables{}, fmt.Errorf("vectorizedSubmatrix: %w", err)
	}

	return w, tables, nil
}

// expandSiteNorbs flattens the per-family norbs into the optional per-site
// companion output. Complexity: O(sites).
func expandSiteNorbs(arrays []lattice.SiteArray, t famTables) []int {
	out := make([]int, 0, t.siteOff[len(t.siteOff)-1])
	for k, a := range arrays {
		for i := 0; i < a.Len; i++ {
			out = append(out, t.norbs[k])
		}
	}

	return out
}
