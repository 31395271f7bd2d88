// Package cxmat provides the complex-valued matrix primitives used by the
// blockham assemblers.
//
// The cxmat package provides:
//
//   - Dense: a row-major complex128 matrix backed by a single flat slice,
//     with O(1) element access and block-level accumulating writes.
//   - COO: a coordinate-triplet sparse container where repeated (row, col)
//     entries accumulate on conversion; exact-zero entries are compacted
//     away by default without changing the effective matrix.
//   - BlockStack: a stack of equally-shaped dense blocks stored contiguously,
//     the batched carrier used by the vectorized assembly path.
//
// Dense and COO are interchangeable assembly targets: both satisfy the
// BlockWriter interface, and COO.ToDense always equals the equivalent
// dense assembly elementwise.
//
// All containers are plain value stores with no numeric policy beyond exact
// complex128 arithmetic; conjugate transposition is bit-exact.
package cxmat
