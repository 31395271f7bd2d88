// SPDX-License-Identifier: MIT

// Package assemble: the norb resolver.
//
// Determining every family's block size may require calling the external
// term evaluator, which is potentially expensive. The resolver therefore
// works in three tiers: use the system's precomputed orbital table when one
// exists; otherwise read shapes off term blocks that other parts of the
// same call already evaluated (the shared per-call cache); only then
// evaluate one representative term per still-unknown family, memoizing the
// result into the cache so the subsequent write pass reuses it.
package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// resolveNorbs produces the per-family block sizes and the orbital/site
// offset tables for sys, reusing and populating cache (term index →
// evaluated block stack) to avoid redundant evaluator calls.
//
// Implementation:
//   - Stage 1 (fast path): a non-nil SiteRanges table is used directly.
//   - Stage 2 (opportunistic): read the trailing two dimensions of every
//     already-evaluated term block in cache as the norb of its endpoints.
//   - Stage 3 (lazy): for each family still unknown, evaluate one
//     representative term touching it, purely to read the shape.
//   - Stage 4 (fail-fast): any family still unknown ⇒ ErrUnresolvableOrbitals
//     naming every such family.
//
// Errors: ErrUnresolvableOrbitals; ErrIndexOutOfRange for terms naming
// nonexistent families; evaluator errors are passed through.
// Complexity: O(families + terms) index work plus at most one evaluator
// call per initially unknown family.
func resolveNorbs(sys lattice.VectorizedSystem, cache map[int]*cxmat.BlockStack, args lattice.Args) (famTables, error) {
	arrays := sys.SiteArrays()
	m := len(arrays)

	// Stage 1: precomputed table from the graph's metadata.
	if ranges := sys.SiteRanges(); ranges != nil && len(ranges) == m {
		t := famTables{
			norbs:   make([]int, m),
			orbOff:  make([]int, m+1),
			siteOff: make([]int, m+1),
		}
		for k, r := range ranges {
			t.norbs[k] = r.Norb
			t.orbOff[k] = r.FirstOrb
			t.siteOff[k] = r.FirstSite
		}
		if m > 0 {
			t.orbOff[m] = ranges[m-1].FirstOrb + arrays[m-1].Len*ranges[m-1].Norb
			t.siteOff[m] = ranges[m-1].FirstSite + arrays[m-1].Len
		}

		return t, nil
	}

	// Stage 2: seed norbs from blocks the caller already evaluated. The
	// term-declared family indices are checked up front: stages 2 and 3
	// index the norbs slice with them.
	norbs := make([]int, m) // 0 = unknown
	terms := sys.Terms()
	for ti, term := range terms {
		sub := term.Subgraph
		if sub.ToArray < 0 || sub.ToArray >= m || sub.FromArray < 0 || sub.FromArray >= m {
			return famTables{}, fmt.Errorf("resolveNorbs: term %d families (%d,%d) of %d: %w",
				ti, sub.ToArray, sub.FromArray, m, ErrIndexOutOfRange)
		}
	}
	for ti, blocks := range cache {
		if ti < 0 || ti >= len(terms) || blocks == nil {
			continue
		}
		sub := terms[ti].Subgraph
		norbs[sub.ToArray] = blocks.BlockRows()
		norbs[sub.FromArray] = blocks.BlockCols()
	}

	// Stage 3: evaluate one representative term per still-unknown family.
	for fam := 0; fam < m; fam++ {
		if norbs[fam] != 0 {
			continue
		}
		for ti := range terms {
			sub := terms[ti].Subgraph
			if sub.ToArray != fam && sub.FromArray != fam {
				continue
			}
			blocks, err := sys.TermBlocks(ti, args)
			if err != nil {
				return famTables{}, fmt.Errorf("resolveNorbs: term %d: %w", ti, err)
			}
			cache[ti] = blocks // memoize; the write pass will reuse it
			norbs[sub.ToArray] = blocks.BlockRows()
			norbs[sub.FromArray] = blocks.BlockCols()

			break
		}
	}

	// Stage 4: anything still unknown means sites without any defined term.
	var unknown []string
	for fam := 0; fam < m; fam++ {
		if norbs[fam] == 0 {
			unknown = append(unknown, strconv.Itoa(fam))
		}
	}
	if len(unknown) > 0 {
		return famTables{}, fmt.Errorf("resolveNorbs: families %s: %w",
			strings.Join(unknown, ", "), ErrUnresolvableOrbitals)
	}

	// Build the offset tables by cumulative summation with trailing totals.
	orbSizes := make([]int, m)
	siteSizes := make([]int, m)
	for k, a := range arrays {
		orbSizes[k] = a.Len * norbs[k]
		siteSizes[k] = a.Len
	}

	return famTables{norbs: norbs, orbOff: OffsetIndex(orbSizes), siteOff: OffsetIndex(siteSizes)}, nil
}
