package assemble_test

import (
	"testing"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
	"github.com/stretchr/testify/require"
)

// block builds a Dense from row literals; fixtures fail the test on bad input.
func block(t *testing.T, rows [][]complex128) *cxmat.Dense {
	t.Helper()
	b, err := cxmat.FromRows(rows)
	require.NoError(t, err)

	return b
}

// stack builds a BlockStack from row literals, one block per literal.
func stack(t *testing.T, blocks ...[][]complex128) *cxmat.BlockStack {
	t.Helper()
	ds := make([]*cxmat.Dense, len(blocks))
	for i, rows := range blocks {
		ds[i] = block(t, rows)
	}
	s, err := cxmat.StackFromBlocks(ds...)
	require.NoError(t, err)

	return s
}

// twoSiteGraph is the canonical two-site fixture: norb = [1, 2], no onsite
// blocks, one stored hopping (site0 ← site1) with block [[1+2i, 0]].
func twoSiteGraph(t *testing.T) *lattice.Graph {
	t.Helper()
	b := lattice.NewBuilder()
	s0, err := b.AddSite(1, nil)
	require.NoError(t, err)
	s1, err := b.AddSite(2, nil)
	require.NoError(t, err)
	require.NoError(t, b.AddHopping(s0, s1, block(t, [][]complex128{{1 + 2i, 0}})))

	return b.Build()
}

// funcSystem is a hand-rolled lattice.System whose evaluator is a plain
// function — used for misbehaving-evaluator scenarios the builders refuse
// to construct.
type funcSystem struct {
	n   int
	adj [][]int
	ham func(to, from int) (*cxmat.Dense, error)
}

func (s *funcSystem) NumSites() int { return s.n }

func (s *funcSystem) Neighbors(site int) []int {
	if site < 0 || site >= len(s.adj) {
		return nil
	}

	return s.adj[site]
}

func (s *funcSystem) Hamiltonian(to, from int, _ lattice.Args) (*cxmat.Dense, error) {
	return s.ham(to, from)
}

// fakeVec is a hand-rolled lattice.VectorizedSystem with direct control
// over the orbital table and term blocks, plus per-term evaluation counts
// for memoization assertions.
type fakeVec struct {
	arrays []lattice.SiteArray
	ranges []lattice.SiteRange
	terms  []lattice.Term
	blocks map[int]*cxmat.BlockStack
	cell   int

	calls map[int]int
}

func (f *fakeVec) SiteArrays() []lattice.SiteArray { return f.arrays }
func (f *fakeVec) Terms() []lattice.Term           { return f.terms }
func (f *fakeVec) SiteRanges() []lattice.SiteRange { return f.ranges }
func (f *fakeVec) CellSize() int                   { return f.cell }

func (f *fakeVec) TermBlocks(i int, _ lattice.Args) (*cxmat.BlockStack, error) {
	if f.calls == nil {
		f.calls = make(map[int]int)
	}
	f.calls[i]++

	return f.blocks[i], nil
}
