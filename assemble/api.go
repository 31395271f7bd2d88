// SPDX-License-Identifier: MIT
// Package assemble — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for every assembly path.
//   - Avoid logic duplication — each facade delegates to the canonical
//     kernel in impl_sites.go / impl_vectorized.go / impl_cell.go and only
//     chooses the output container.
//   - Keep function names explicit: the Dense/Sparse suffix pair always
//     produces numerically identical matrices; the *Norb variants add the
//     optional per-entity orbital-count companion outputs.
//
// Determinism & Policy:
//   - Facades never change the loop orders of the underlying kernels.
//   - A nil to/from subset means "use all sites"; both nil selects the
//     Hermitian full-system path, anything else the subset path with its
//     deliberate no-mirroring semantics.
//   - Validation is performed in the kernels; facades only compose.

package assemble

import (
	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
)

// denseFactory allocates the dense output container.
func denseFactory(rows, cols int) (cxmat.BlockWriter, error) {
	return cxmat.NewDense(rows, cols)
}

// sparseFactory allocates the sparse output container under the resolved
// zero-compaction policy.
func sparseFactory(o Options) writerFactory {
	return func(rows, cols int) (cxmat.BlockWriter, error) {
		if o.explicitZeros {
			return cxmat.NewCOO(rows, cols, cxmat.WithExplicitZeros())
		}

		return cxmat.NewCOO(rows, cols)
	}
}

// ---------- Non-vectorized (explicit per-site) facades ----------

// DenseSubmatrix assembles the submatrix selected by toSites × fromSites of
// a per-site system into a dense matrix. Both subsets nil assembles the
// full system, Hermitian by contract (each stored bond is mirrored as its
// conjugate transpose); explicit subsets assemble without mirroring.
// Complexity: O(Σ written block volume).
func DenseSubmatrix(sys lattice.System, toSites, fromSites []int, opts ...Option) (*cxmat.Dense, error) {
	m, _, _, err := submatrix(sys, toSites, fromSites, denseFactory, opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.Dense), nil
}

// SparseSubmatrix is DenseSubmatrix with coordinate-triplet output; exact
// zeros are compacted away unless WithExplicitZeros is given, and
// SparseSubmatrix(...).ToDense() equals DenseSubmatrix(...) elementwise.
func SparseSubmatrix(sys lattice.System, toSites, fromSites []int, opts ...Option) (*cxmat.COO, error) {
	o := gatherOptions(opts...)
	m, _, _, err := submatrix(sys, toSites, fromSites, sparseFactory(o), opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.COO), nil
}

// DenseSubmatrixNorb is DenseSubmatrix returning in addition the per-entry
// orbital counts of the to and from sides (per site of the full system when
// the respective subset is nil).
func DenseSubmatrixNorb(sys lattice.System, toSites, fromSites []int, opts ...Option) (*cxmat.Dense, []int, []int, error) {
	m, toNorb, fromNorb, err := submatrix(sys, toSites, fromSites, denseFactory, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	return m.(*cxmat.Dense), toNorb, fromNorb, nil
}

// SparseSubmatrixNorb is SparseSubmatrix with the orbital-count companions.
func SparseSubmatrixNorb(sys lattice.System, toSites, fromSites []int, opts ...Option) (*cxmat.COO, []int, []int, error) {
	o := gatherOptions(opts...)
	m, toNorb, fromNorb, err := submatrix(sys, toSites, fromSites, sparseFactory(o), opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	return m.(*cxmat.COO), toNorb, fromNorb, nil
}

// submatrix is the shared dispatch of the four per-site facades: resolve
// options, validate, and select the full or subset kernel.
func submatrix(sys lattice.System, toSites, fromSites []int, factory writerFactory, opts ...Option) (cxmat.BlockWriter, []int, []int, error) {
	o := gatherOptions(opts...)
	if err := validateSystem(sys, o.args); err != nil {
		return nil, nil, nil, err
	}
	if toSites == nil && fromSites == nil {
		w, norb, err := fullSubmatrix(sys, o.args, factory)
		if err != nil {
			return nil, nil, nil, err
		}

		return w, norb, norb, nil
	}
	// One-sided nil still means "use all sites" on that side, but the
	// subsets are independent now, so the no-mirroring subset path runs.
	if toSites == nil {
		toSites = allSites(sys.NumSites())
	}
	if fromSites == nil {
		fromSites = allSites(sys.NumSites())
	}

	return subsetSubmatrix(sys, toSites, fromSites, o.args, factory)
}

// ---------- Vectorized (batched per-family) facades ----------

// VectorizedDense assembles the full matrix of a vectorized system into a
// dense matrix: every term evaluated once, Hermitian terms expanded into
// synthesized conjugate-transposed duplicates, all instances written at
// their orbital offsets.
// Complexity: O(terms + Σ instance block volume).
func VectorizedDense(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.Dense, error) {
	m, _, err := vectorized(sys, denseFactory, opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.Dense), nil
}

// VectorizedSparse is VectorizedDense with coordinate-triplet output.
func VectorizedSparse(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.COO, error) {
	o := gatherOptions(opts...)
	m, _, err := vectorized(sys, sparseFactory(o), opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.COO), nil
}

// VectorizedDenseNorb is VectorizedDense returning in addition the per-site
// orbital counts (identical for rows and columns on this square path).
func VectorizedDenseNorb(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.Dense, []int, error) {
	m, tables, err := vectorized(sys, denseFactory, opts...)
	if err != nil {
		return nil, nil, err
	}

	return m.(*cxmat.Dense), expandSiteNorbs(sys.SiteArrays(), tables), nil
}

// VectorizedSparseNorb is VectorizedSparse with the orbital-count companion.
func VectorizedSparseNorb(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.COO, []int, error) {
	o := gatherOptions(opts...)
	m, tables, err := vectorized(sys, sparseFactory(o), opts...)
	if err != nil {
		return nil, nil, err
	}

	return m.(*cxmat.COO), expandSiteNorbs(sys.SiteArrays(), tables), nil
}

// vectorized is the shared dispatch of the vectorized facades.
func vectorized(sys lattice.VectorizedSystem, factory writerFactory, opts ...Option) (cxmat.BlockWriter, famTables, error) {
	o := gatherOptions(opts...)
	if err := validateVectorized(sys, o.args); err != nil {
		return nil, famTables{}, err
	}

	return vectorizedSubmatrix(sys, o.args, factory)
}

// ---------- Cell-restricted (periodic/lead) facades ----------

// CellHamiltonianDense assembles the square Hamiltonian of one unit cell of
// a periodic vectorized system: only terms with both endpoints inside the
// cell contribute (and only those are evaluated).
// Errors: ErrNotPeriodic on finite systems.
func CellHamiltonianDense(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.Dense, error) {
	m, err := cellRestricted(sys, cellHamiltonian, denseFactory, opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.Dense), nil
}

// CellHamiltonianSparse is CellHamiltonianDense with triplet output.
func CellHamiltonianSparse(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.COO, error) {
	o := gatherOptions(opts...)
	m, err := cellRestricted(sys, cellHamiltonian, sparseFactory(o), opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.COO), nil
}

// InterCellHoppingDense assembles the coupling from the interface layer of
// the neighboring cell into the fundamental cell: rows are cell orbitals,
// columns interface orbitals, shape (cellOrbs, totalOrbs − cellOrbs).
// Errors: ErrNotPeriodic on finite systems.
func InterCellHoppingDense(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.Dense, error) {
	m, err := cellRestricted(sys, interCellHopping, denseFactory, opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.Dense), nil
}

// InterCellHoppingSparse is InterCellHoppingDense with triplet output.
func InterCellHoppingSparse(sys lattice.VectorizedSystem, opts ...Option) (*cxmat.COO, error) {
	o := gatherOptions(opts...)
	m, err := cellRestricted(sys, interCellHopping, sparseFactory(o), opts...)
	if err != nil {
		return nil, err
	}

	return m.(*cxmat.COO), nil
}

// cellRestricted is the shared dispatch of the four cell facades.
func cellRestricted(
	sys lattice.VectorizedSystem,
	kernel func(lattice.VectorizedSystem, lattice.Args, writerFactory) (cxmat.BlockWriter, error),
	factory writerFactory,
	opts ...Option,
) (cxmat.BlockWriter, error) {
	o := gatherOptions(opts...)
	if err := validateVectorized(sys, o.args); err != nil {
		return nil, err
	}

	return kernel(sys, o.args, factory)
}
