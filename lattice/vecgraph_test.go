package lattice_test

import (
	"testing"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
	"github.com/stretchr/testify/require"
)

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

func TestVecBuilder_FamilyValidation(t *testing.T) {
	vb := lattice.NewVecBuilder()

	_, err := vb.AddFamily(0, 1)
	require.ErrorIs(t, err, lattice.ErrEmptyFamily)
	_, err = vb.AddFamily(2, -1)
	require.ErrorIs(t, err, lattice.ErrBadNorb)

	fam, err := vb.AddFamily(2, 1)
	require.NoError(t, err)
	require.Equal(t, 0, fam)
}

func TestVecBuilder_TermValidation(t *testing.T) {
	vb := lattice.NewVecBuilder()
	fam, err := vb.AddFamily(2, 1)
	require.NoError(t, err)

	one := stack(t, [][]complex128{{1}})

	require.ErrorIs(t, vb.AddOnsiteTerm(3, []int{0}, one), lattice.ErrFamilyOutOfRange)
	// Parallel slices and the stack must agree in length.
	require.ErrorIs(t, vb.AddOnsiteTerm(fam, []int{0, 1}, one), lattice.ErrTermShape)
	// Local offsets must point inside the family.
	require.ErrorIs(t, vb.AddOnsiteTerm(fam, []int{2}, one), lattice.ErrSiteOutOfRange)
	// A block contradicting the declared norb is rejected eagerly.
	wide := stack(t, [][]complex128{{1, 2}})
	require.ErrorIs(t, vb.AddHoppingTerm(fam, fam, []int{0}, []int{1}, wide, false), lattice.ErrBlockShape)

	require.NoError(t, vb.AddOnsiteTerm(fam, []int{0}, one))
}

func TestVecBuilder_NorbPinning(t *testing.T) {
	vb := lattice.NewVecBuilder()
	// norb 0 declares the block size unknown; the first term pins it.
	fam, err := vb.AddFamily(2, 0)
	require.NoError(t, err)

	require.NoError(t, vb.AddOnsiteTerm(fam, []int{0}, stack(t, [][]complex128{{1, 0}, {0, 1}})))
	// A later contradiction is rejected.
	require.ErrorIs(t, vb.AddOnsiteTerm(fam, []int{1}, stack(t, [][]complex128{{1}})), lattice.ErrBlockShape)

	g, err := vb.Build()
	require.NoError(t, err)
	ranges := g.SiteRanges()
	require.Len(t, ranges, 1)
	require.Equal(t, 2, ranges[0].Norb)
}

func TestVecBuilder_SiteRanges(t *testing.T) {
	vb := lattice.NewVecBuilder()
	_, err := vb.AddFamily(3, 1)
	require.NoError(t, err)
	_, err = vb.AddFamily(2, 2)
	require.NoError(t, err)

	g, err := vb.Build()
	require.NoError(t, err)
	require.Equal(t, []lattice.SiteRange{
		{FirstSite: 0, Norb: 1, FirstOrb: 0},
		{FirstSite: 3, Norb: 2, FirstOrb: 3},
	}, g.SiteRanges())

	// Suppressing the table forces the lazy resolver path downstream.
	vb2 := lattice.NewVecBuilder()
	_, err = vb2.AddFamily(3, 1)
	require.NoError(t, err)
	g2, err := vb2.Build(lattice.WithoutSiteRanges())
	require.NoError(t, err)
	require.Nil(t, g2.SiteRanges())

	// Unknown norb with no pinning term also yields no table.
	vb3 := lattice.NewVecBuilder()
	_, err = vb3.AddFamily(3, 0)
	require.NoError(t, err)
	g3, err := vb3.Build()
	require.NoError(t, err)
	require.Nil(t, g3.SiteRanges())
}

func TestVecBuilder_CellSize(t *testing.T) {
	newBuilder := func() *lattice.VecBuilder {
		vb := lattice.NewVecBuilder()
		_, err := vb.AddFamily(2, 1)
		require.NoError(t, err)
		_, err = vb.AddFamily(2, 1)
		require.NoError(t, err)

		return vb
	}

	g, err := newBuilder().Build(lattice.WithCellSize(2))
	require.NoError(t, err)
	require.Equal(t, 2, g.CellSize())

	// The cell must leave at least one interface site outside it.
	_, err = newBuilder().Build(lattice.WithCellSize(4))
	require.ErrorIs(t, err, lattice.ErrCellSize)
	_, err = newBuilder().Build(lattice.WithCellSize(-1))
	require.ErrorIs(t, err, lattice.ErrCellSize)

	g, err = newBuilder().Build()
	require.NoError(t, err)
	require.Equal(t, 0, g.CellSize())
}

func TestVecGraph_TermBlocks(t *testing.T) {
	vb := lattice.NewVecBuilder()
	fam, err := vb.AddFamily(1, 1)
	require.NoError(t, err)
	one := stack(t, [][]complex128{{2}})
	require.NoError(t, vb.AddOnsiteTerm(fam, []int{0}, one))
	g, err := vb.Build()
	require.NoError(t, err)

	got, err := g.TermBlocks(0, lattice.Args{})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	_, err = g.TermBlocks(1, lattice.Args{})
	require.ErrorIs(t, err, lattice.ErrTermIndex)

	_, err = g.TermBlocks(0, lattice.Args{Positional: []any{1}, Params: map[string]any{"a": 1}})
	require.ErrorIs(t, err, lattice.ErrArgConflict)
}
