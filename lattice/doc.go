// Package lattice defines the site-graph model consumed by the blockham
// assemblers, and provides builders for constructing concrete systems.
//
// Two views of the same physical operator exist:
//
//   - System: the explicit per-site view. Sites are indices 0..n-1, each
//     owning one square onsite block; directed edges (to, from) own one
//     hopping block of shape (norb(to), norb(from)). Adjacency is
//     enumerated per site and is immutable during assembly.
//   - VectorizedSystem: the compressed per-family view. The sites are
//     partitioned into an ordered sequence of site arrays (families), each
//     sharing one norb; hoppings are batched per (family-pair, term), with
//     per-instance local offsets into the two families. A term marked
//     Hermitian stores only one direction; the reverse contribution is
//     synthesized as the conjugate transpose by the assembler.
//
// Builder and VecBuilder construct immutable in-memory implementations of
// the two interfaces from stored blocks; any external evaluator can
// implement the interfaces directly instead.
//
// All constructed graphs are read-only after Build and safe for concurrent
// assembly calls.
package lattice
