// Package lattice: Builder and Graph — the stored-block implementation of
// the explicit per-site System view.
package lattice

import (
	"fmt"

	"github.com/katalvlaran/blockham/cxmat"
)

// hopKey is the ordered pair (to, from) identifying one stored hopping block.
type hopKey struct {
	to   int
	from int
}

// Builder accumulates sites and hoppings and produces an immutable Graph.
// Builders are single-use: Build seals the accumulated state.
//
// Validation happens eagerly at Add time, so a Build cannot fail: every
// stored block already agrees with the declared norbs.
type Builder struct {
	norbs  []int
	onsite []*cxmat.Dense
	adj    [][]int
	hops   map[hopKey]*cxmat.Dense
}

// NewBuilder creates an empty graph builder. Complexity: O(1).
func NewBuilder() *Builder {
	return &Builder{hops: make(map[hopKey]*cxmat.Dense)}
}

// AddSite appends one site with the given norb and optional onsite block,
// returning the new site's index. A nil onsite block means a zero-filled
// norb×norb diagonal block. A non-nil block must be square with dimension
// norb, otherwise ErrBlockShape.
// Complexity: O(1).
func (b *Builder) AddSite(norb int, onsite *cxmat.Dense) (int, error) {
	if norb <= 0 {
		return 0, fmt.Errorf("AddSite: norb %d: %w", norb, ErrBadNorb)
	}
	if onsite != nil && (onsite.Rows() != norb || onsite.Cols() != norb) {
		return 0, fmt.Errorf("AddSite: onsite block is %d×%d, want %d×%d: %w",
			onsite.Rows(), onsite.Cols(), norb, norb, ErrBlockShape)
	}
	id := len(b.norbs)
	b.norbs = append(b.norbs, norb)
	b.onsite = append(b.onsite, onsite)
	b.adj = append(b.adj, nil)

	return id, nil
}

// AddHopping stores the block coupling (to ← from) and records the pair in
// both adjacency lists. Only one direction may be stored per pair: the
// reverse block is synthesized as the conjugate transpose on evaluation,
// which is how a Hermitian operator keeps a single source of truth.
// Errors: ErrSiteOutOfRange, ErrSelfHopping, ErrBlockShape, ErrHoppingExists.
// Complexity: O(1).
func (b *Builder) AddHopping(to, from int, block *cxmat.Dense) error {
	if to < 0 || to >= len(b.norbs) || from < 0 || from >= len(b.norbs) {
		return fmt.Errorf("AddHopping(%d,%d): %w", to, from, ErrSiteOutOfRange)
	}
	if to == from {
		return fmt.Errorf("AddHopping(%d,%d): %w", to, from, ErrSelfHopping)
	}
	if block == nil {
		return fmt.Errorf("AddHopping(%d,%d): %w", to, from, cxmat.ErrNilMatrix)
	}
	if block.Rows() != b.norbs[to] || block.Cols() != b.norbs[from] {
		return fmt.Errorf("AddHopping(%d,%d): block is %d×%d, want %d×%d: %w",
			to, from, block.Rows(), block.Cols(), b.norbs[to], b.norbs[from], ErrBlockShape)
	}
	if _, dup := b.hops[hopKey{to, from}]; dup {
		return fmt.Errorf("AddHopping(%d,%d): %w", to, from, ErrHoppingExists)
	}
	if _, dup := b.hops[hopKey{from, to}]; dup {
		return fmt.Errorf("AddHopping(%d,%d): reverse direction stored: %w", to, from, ErrHoppingExists)
	}
	b.hops[hopKey{to, from}] = block
	// Record both directions in the adjacency: assembly walks outgoing
	// neighbors of every site and synthesizes the reverse block on demand.
	b.adj[from] = append(b.adj[from], to)
	b.adj[to] = append(b.adj[to], from)

	return nil
}

// Build seals the builder into an immutable Graph. The builder must not be
// used afterwards. Complexity: O(1) — slices are handed over, not copied.
func (b *Builder) Build() *Graph {
	g := &Graph{norbs: b.norbs, onsite: b.onsite, adj: b.adj, hops: b.hops}
	b.norbs, b.onsite, b.adj, b.hops = nil, nil, nil, nil

	return g
}

// Graph is an immutable stored-block site graph implementing System.
// All evaluation is pure lookup; Args are accepted for interface parity and
// only checked for the mutually exclusive calling convention.
type Graph struct {
	norbs  []int
	onsite []*cxmat.Dense
	adj    [][]int
	hops   map[hopKey]*cxmat.Dense
}

// NumSites returns the number of sites. Complexity: O(1).
func (g *Graph) NumSites() int { return len(g.norbs) }

// Norb returns the block size of the given site.
// Errors: ErrSiteOutOfRange. Complexity: O(1).
func (g *Graph) Norb(site int) (int, error) {
	if site < 0 || site >= len(g.norbs) {
		return 0, fmt.Errorf("Norb(%d): %w", site, ErrSiteOutOfRange)
	}

	return g.norbs[site], nil
}

// Neighbors returns the outgoing neighbor list of the given site in
// insertion order. Out-of-range sites yield an empty list; the assemblers
// validate site indices before walking adjacency.
// Complexity: O(1).
func (g *Graph) Neighbors(site int) []int {
	if site < 0 || site >= len(g.adj) {
		return nil
	}

	return g.adj[site]
}

// Hamiltonian evaluates the block (to ← from) from stored data.
// Resolution order: onsite block (to == from, zero-filled when absent),
// stored direction, then conjugate transpose of the stored reverse
// direction. A pair with no stored block fails with ErrHoppingNotFound.
// Complexity: O(1) lookup; O(r*c) when the reverse block is synthesized.
func (g *Graph) Hamiltonian(to, from int, args Args) (*cxmat.Dense, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}
	if to < 0 || to >= len(g.norbs) || from < 0 || from >= len(g.norbs) {
		return nil, fmt.Errorf("Hamiltonian(%d,%d): %w", to, from, ErrSiteOutOfRange)
	}
	if to == from {
		if g.onsite[to] != nil {
			return g.onsite[to], nil
		}
		// Absent onsite blocks are zero-filled diagonal blocks.
		return cxmat.NewDense(g.norbs[to], g.norbs[to])
	}
	if h, ok := g.hops[hopKey{to, from}]; ok {
		return h, nil
	}
	if h, ok := g.hops[hopKey{from, to}]; ok {
		return h.ConjTranspose(), nil
	}

	return nil, fmt.Errorf("Hamiltonian(%d,%d): %w", to, from, ErrHoppingNotFound)
}
