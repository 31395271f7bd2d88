// SPDX-License-Identifier: MIT

// Package assemble: the non-vectorized (explicit per-site) assembler.
//
// Two sub-paths share this file, each reachable in sparse and dense form
// through the writerFactory indirection:
//
//   - fullSubmatrix walks all n sites. The operator is Hermitian by
//     contract on this path: each stored bond is written once together with
//     its conjugate transpose, so no reverse edge needs to exist in the
//     graph and M == conj(M)ᵀ holds bit-for-bit.
//   - subsetSubmatrix takes independent to/from site sequences (repeats,
//     reorders and omissions allowed) and writes exactly the blocks whose
//     endpoints fall inside the requested subsets. No mirroring happens
//     here: the result is an arbitrary rectangular submatrix and need not
//     be symmetric. The asymmetry with the full path is deliberate.
package assemble

import (
	"fmt"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// fullSubmatrix assembles the whole-system matrix.
//
// Implementation:
//   - Stage 1 (norbs): evaluate every onsite block once; its dimension is
//     the site's norb. Blocks are retained for the write pass, so the
//     evaluator runs exactly once per site.
//   - Stage 2 (offsets): prefix-sum the norbs; the trailing total is the
//     matrix dimension on both axes.
//   - Stage 3 (write): onsite block at (off[s], off[s]); for each outgoing
//     neighbor ts of fs with fs < ts (each undirected pair once), evaluate
//     H(ts, fs), write it at (off[ts], off[fs]) and its conjugate transpose
//     at (off[fs], off[ts]).
//
// Returns the filled writer plus the per-site orbital counts (identical for
// both sides on this path).
// Errors: ErrShapeMismatch with the offending site (pair); evaluator errors
// pass through. Complexity: O(Σ norb² over sites and bonds).
func fullSubmatrix(sys lattice.System, args lattice.Args, factory writerFactory) (cxmat.BlockWriter, []int, error) {
	n := sys.NumSites()

	// Stage 1: onsite evaluation doubles as norb discovery.
	onsite := make([]*cxmat.Dense, n)
	norb := make([]int, n)
	for s := 0; s < n; s++ {
		b, err := sys.Hamiltonian(s, s, args)
		if err != nil {
			return nil, nil, fmt.Errorf("fullSubmatrix: site %d: %w", s, err)
		}
		if err = validateOnsiteShape(s, b); err != nil {
			return nil, nil, fmt.Errorf("fullSubmatrix: %w", err)
		}
		onsite[s] = b
		norb[s] = b.Rows()
	}

	// Stage 2: cumulative offsets with trailing total dimension.
	off := OffsetIndex(norb)

	// Stage 3: block writes; dense and sparse share this loop verbatim.
	w, err := factory(off[n], off[n])
	if err != nil {
		return nil, nil, fmt.Errorf("fullSubmatrix: %w", err)
	}
	for fs := 0; fs < n; fs++ {
		if err = w.AddBlock(off[fs], off[fs], onsite[fs]); err != nil {
			return nil, nil, fmt.Errorf("fullSubmatrix: site %d: %w", fs, err)
		}
		for _, ts := range sys.Neighbors(fs) {
			if ts <= fs {
				continue // each undirected pair exactly once; loops are onsite
			}
			if ts >= n {
				return nil, nil, fmt.Errorf("fullSubmatrix: neighbor %d of site %d with %d sites: %w",
					ts, fs, n, ErrIndexOutOfRange)
			}
			h, herr := sys.Hamiltonian(ts, fs, args)
			if herr != nil {
				return nil, nil, fmt.Errorf("fullSubmatrix: hopping (%d,%d): %w", ts, fs, herr)
			}
			if err = validateHoppingShape(ts, fs, h, norb[ts], norb[fs]); err != nil {
				return nil, nil, fmt.Errorf("fullSubmatrix: %w", err)
			}
			if err = w.AddBlock(off[ts], off[fs], h); err != nil {
				return nil, nil, fmt.Errorf("fullSubmatrix: hopping (%d,%d): %w", ts, fs, err)
			}
			// Hermitian mirror, written directly from conjugated source data.
			if err = w.AddBlock(off[fs], off[ts], h.ConjTranspose()); err != nil {
				return nil, nil, fmt.Errorf("fullSubmatrix: hopping (%d,%d): %w", fs, ts, err)
			}
		}
	}

	return w, norb, nil
}

// subsetSubmatrix assembles the rectangular submatrix selected by the
// independent toSites and fromSites sequences.
//
// Implementation:
//   - Stage 1 (validate): every supplied index must lie in [0, n).
//   - Stage 2 (norbs): evaluate the onsite block of every distinct site
//     appearing in either sequence, memoized, purely to read its dimension
//     (and to have the block at hand for diagonal writes).
//   - Stage 3 (lookup): map each global "to" site to its position in
//     toSites; when a site repeats, the last occurrence wins.
//   - Stage 4 (write): for fromSites[j] = fs, write its onsite block at the
//     cross location if fs is present in the to-lookup; then for every
//     neighbor ts of fs present in the lookup, evaluate H(ts, fs) and write
//     it. No conjugate synthesis — the subsets are independent.
//
// Returns the filled writer plus per-entry orbital counts for both sides.
// Errors: ErrIndexOutOfRange, ErrShapeMismatch; evaluator errors pass through.
// Complexity: O(|to| + |from| + Σ blocks written).
func subsetSubmatrix(sys lattice.System, toSites, fromSites []int, args lattice.Args, factory writerFactory) (cxmat.BlockWriter, []int, []int, error) {
	n := sys.NumSites()

	// Stage 1: fail fast on any out-of-range index.
	if err := validateSubset("to", toSites, n); err != nil {
		return nil, nil, nil, fmt.Errorf("subsetSubmatrix: %w", err)
	}
	if err := validateSubset("from", fromSites, n); err != nil {
		return nil, nil, nil, fmt.Errorf("subsetSubmatrix: %w", err)
	}

	// Stage 2: memoized onsite evaluation; one call per distinct site.
	onsite := make(map[int]*cxmat.Dense, len(toSites)+len(fromSites))
	siteNorb := func(s int) (int, error) {
		if b, ok := onsite[s]; ok {
			return b.Rows(), nil
		}
		b, err := sys.Hamiltonian(s, s, args)
		if err != nil {
			return 0, fmt.Errorf("site %d: %w", s, err)
		}
		if err = validateOnsiteShape(s, b); err != nil {
			return 0, err
		}
		onsite[s] = b

		return b.Rows(), nil
	}

	toNorb := make([]int, len(toSites))
	fromNorb := make([]int, len(fromSites))
	for i, s := range toSites {
		nb, err := siteNorb(s)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("subsetSubmatrix: %w", err)
		}
		toNorb[i] = nb
	}
	for j, s := range fromSites {
		nb, err := siteNorb(s)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("subsetSubmatrix: %w", err)
		}
		fromNorb[j] = nb
	}
	toOff := OffsetIndex(toNorb)
	fromOff := OffsetIndex(fromNorb)

	// Stage 3: global "to" site → position in toSites; last occurrence wins.
	lookup := make(map[int]int, len(toSites))
	for i, ts := range toSites {
		lookup[ts] = i
	}

	// Stage 4: write loop.
	w, err := factory(toOff[len(toSites)], fromOff[len(fromSites)])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("subsetSubmatrix: %w", err)
	}
	for j, fs := range fromSites {
		if i, ok := lookup[fs]; ok {
			if err = w.AddBlock(toOff[i], fromOff[j], onsite[fs]); err != nil {
				return nil, nil, nil, fmt.Errorf("subsetSubmatrix: site %d: %w", fs, err)
			}
		}
		for _, ts := range sys.Neighbors(fs) {
			i, ok := lookup[ts]
			if !ok {
				continue // target site not requested; block is skipped entirely
			}
			h, herr := sys.Hamiltonian(ts, fs, args)
			if herr != nil {
				return nil, nil, nil, fmt.Errorf("subsetSubmatrix: hopping (%d,%d): %w", ts, fs, herr)
			}
			if err = validateHoppingShape(ts, fs, h, toNorb[i], fromNorb[j]); err != nil {
				return nil, nil, nil, fmt.Errorf("subsetSubmatrix: %w", err)
			}
			if err = w.AddBlock(toOff[i], fromOff[j], h); err != nil {
				return nil, nil, nil, fmt.Errorf("subsetSubmatrix: hopping (%d,%d): %w", ts, fs, err)
			}
		}
	}

	return w, toNorb, fromNorb, nil
}

// allSites enumerates 0..n-1; the facades use it when a nil subset means
// "use all sites" on one side only.
func allSites(n int) []int {
	sites := make([]int, n)
	for i := range sites {
		sites[i] = i
	}

	return sites
}
