// Package blockham is your in-memory toolkit for assembling block-structured
// operator matrices over site graphs — tight-binding Hamiltonians and their
// periodic-lead building blocks.
//
// 🚀 What is blockham?
//
//	A deterministic, pure-Go library that brings together:
//		• Complex block matrices: dense, sparse-triplet and batched block stacks
//		• Site graphs: per-site systems with stored hoppings and synthesized
//		  conjugate-transposed reverses
//		• Vectorized systems: site families and batched terms, one evaluator
//		  call per term
//		• Assembly kernels: full, rectangular-subset, vectorized and
//		  cell-restricted (periodic lead) matrices
//
// ✨ Why choose blockham?
//
//   - Bit-exact Hermiticity – stored blocks are mirrored by exact conjugate
//     transposition, never recomputed
//   - Lazy orbital resolution – block sizes are read off precomputed tables
//     when available, inferred from representative terms when not
//   - Deterministic – stable site and term order, no global state
//   - Pure Go – no cgo, no hidden deps
//
// Under the hood, everything is organized under three subpackages:
//
//	cxmat/    — complex128 dense, COO-triplet and stacked-block containers
//	lattice/  — systems: builders, graphs, vectorized graphs, chain fixtures
//	assemble/ — the assembly facades and kernels
//
// Quick ASCII example:
//
//	    0──1──2──3
//
//	a four-site chain; each bond stores one block, the reverse is synthesized.
//
// Dive into the package docs of assemble for the full operation catalogue.
//
//	go get github.com/katalvlaran/blockham
package blockham
