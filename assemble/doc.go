// Package assemble builds the matrix representation of a block-structured
// linear operator defined over a lattice site graph.
//
// Every site owns one square onsite block and every graph edge one hopping
// block; the assembled result is a sparse (coordinate-triplet) or dense
// complex matrix whose row and column ranges are determined by the
// per-site block sizes (numbers of orbitals).
//
// The package offers four assembly strategies behind one facade surface,
// selected by which representation the caller holds and which output form
// is wanted:
//
//   - DenseSubmatrix / SparseSubmatrix: the explicit per-site path over a
//     lattice.System. Nil site subsets assemble the full system with
//     Hermitian mirroring of each stored bond; explicit to/from subsets
//     assemble an arbitrary rectangular submatrix without mirroring.
//   - VectorizedDense / VectorizedSparse: the batched per-family path over
//     a lattice.VectorizedSystem, with Hermitian terms expanded into
//     synthesized conjugate-transposed duplicates before the
//     conjugation-agnostic write loop runs.
//   - CellHamiltonianDense/Sparse and InterCellHoppingDense/Sparse: the
//     unit-cell and inter-cell restrictions of a periodic (lead-like)
//     vectorized system.
//
// All paths funnel through the same offset index builder and norb
// resolver, and the sparse and dense variants of every path produce
// numerically identical matrices: sparse output merely omits exact-zero
// entries, which never changes the effective matrix.
//
// Every operation is a pure, single-threaded, read-only transform: no
// graph, evaluator or argument is ever mutated, each call owns its own
// output buffer, and concurrent calls over the same system are safe.
package assemble
