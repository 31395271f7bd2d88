package assemble_test

import (
	"testing"

	"github.com/katalvlaran/blockham/assemble"
	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
	"github.com/stretchr/testify/require"
)

func TestVectorized_MatchesExplicitChain(t *testing.T) {
	// The same chain in both representations must assemble to the identical
	// matrix, bit for bit.
	onsite := block(t, [][]complex128{{4, 1 - 1i}, {1 + 1i, 4}})
	hop := block(t, [][]complex128{{-1, 0.5i}, {0, -1}})

	g, err := lattice.Chain(5, onsite, hop)
	require.NoError(t, err)
	vg, err := lattice.VecChain(5, onsite, hop)
	require.NoError(t, err)

	explicit, err := assemble.DenseSubmatrix(g, nil, nil)
	require.NoError(t, err)
	vectorized, err := assemble.VectorizedDense(vg)
	require.NoError(t, err)
	require.True(t, explicit.Equal(vectorized))
	require.True(t, vectorized.IsHermitian())
}

func TestVectorized_TwoFamilySystem(t *testing.T) {
	// The hand-built two-site system in vectorized form: one site of norb 1,
	// one of norb 2, a single Hermitian hopping stored in one direction.
	vb := lattice.NewVecBuilder()
	f0, err := vb.AddFamily(1, 1)
	require.NoError(t, err)
	f1, err := vb.AddFamily(1, 2)
	require.NoError(t, err)
	require.NoError(t, vb.AddHoppingTerm(f0, f1, []int{0}, []int{0},
		stack(t, [][]complex128{{1 + 2i, 0}}), true))
	vg, err := vb.Build()
	require.NoError(t, err)

	m, err := assemble.VectorizedDense(vg)
	require.NoError(t, err)
	require.True(t, m.Equal(block(t, [][]complex128{
		{0, 1 + 2i, 0},
		{1 - 2i, 0, 0},
		{0, 0, 0},
	})))

	// And it agrees with the explicit per-site rendition of the same system.
	explicit, err := assemble.DenseSubmatrix(twoSiteGraph(t), nil, nil)
	require.NoError(t, err)
	require.True(t, m.Equal(explicit))
}

func TestVectorized_NonHermitianTermNotMirrored(t *testing.T) {
	vb := lattice.NewVecBuilder()
	f0, err := vb.AddFamily(1, 1)
	require.NoError(t, err)
	f1, err := vb.AddFamily(1, 2)
	require.NoError(t, err)
	require.NoError(t, vb.AddHoppingTerm(f0, f1, []int{0}, []int{0},
		stack(t, [][]complex128{{1 + 2i, 0}}), false))
	vg, err := vb.Build()
	require.NoError(t, err)

	m, err := assemble.VectorizedDense(vg)
	require.NoError(t, err)
	require.True(t, m.Equal(block(t, [][]complex128{
		{0, 1 + 2i, 0},
		{0, 0, 0},
		{0, 0, 0},
	})))
	require.False(t, m.IsHermitian())
}

func TestVectorizedSparse_EqualsDense(t *testing.T) {
	onsite := block(t, [][]complex128{{2}})
	hop := block(t, [][]complex128{{-1 + 0.5i}})
	vg, err := lattice.VecChain(6, onsite, hop)
	require.NoError(t, err)

	d, err := assemble.VectorizedDense(vg)
	require.NoError(t, err)
	s, err := assemble.VectorizedSparse(vg)
	require.NoError(t, err)

	sd, err := s.ToDense()
	require.NoError(t, err)
	require.True(t, d.Equal(sd))

	// 6 onsite entries plus 5 stored and 5 synthesized hoppings.
	require.Equal(t, 16, s.NNZ())
}

func TestVectorizedSparse_ExplicitZeros(t *testing.T) {
	onsite := block(t, [][]complex128{{0, 0}, {0, 0}})
	vg, err := lattice.VecChain(3, onsite, nil)
	require.NoError(t, err)

	compacted, err := assemble.VectorizedSparse(vg)
	require.NoError(t, err)
	require.Equal(t, 0, compacted.NNZ())

	explicit, err := assemble.VectorizedSparse(vg, assemble.WithExplicitZeros())
	require.NoError(t, err)
	require.Equal(t, 12, explicit.NNZ())
}

func TestVectorizedDenseNorb_PerSiteExpansion(t *testing.T) {
	sys := &fakeVec{
		arrays: []lattice.SiteArray{{Len: 2}, {Len: 3}},
		ranges: []lattice.SiteRange{
			{FirstSite: 0, Norb: 2, FirstOrb: 0},
			{FirstSite: 2, Norb: 1, FirstOrb: 4},
		},
	}

	m, norbs, err := assemble.VectorizedDenseNorb(sys)
	require.NoError(t, err)
	require.Equal(t, 7, m.Rows())
	require.Equal(t, []int{2, 2, 1, 1, 1}, norbs)
}

func TestVectorized_ShapeMismatchListsAllPairs(t *testing.T) {
	// Declared norbs are (2, 1) but the term blocks are 2×2: the diagnostic
	// names every offending (to_site, from_site) pair in global indices.
	sys := &fakeVec{
		arrays: []lattice.SiteArray{{Len: 2}, {Len: 3}},
		ranges: []lattice.SiteRange{
			{FirstSite: 0, Norb: 2, FirstOrb: 0},
			{FirstSite: 2, Norb: 1, FirstOrb: 4},
		},
		terms: []lattice.Term{{
			Subgraph: lattice.Subgraph{
				ToArray:     0,
				FromArray:   1,
				ToOffsets:   []int{0, 1, 0},
				FromOffsets: []int{0, 1, 2},
			},
		}},
		blocks: map[int]*cxmat.BlockStack{
			0: stack(t,
				[][]complex128{{1, 0}, {0, 1}},
				[][]complex128{{2, 0}, {0, 2}},
				[][]complex128{{3, 0}, {0, 3}},
			),
		},
	}

	_, err := assemble.VectorizedDense(sys)
	require.ErrorIs(t, err, assemble.ErrShapeMismatch)
	require.Contains(t, err.Error(), "(0,2)")
	require.Contains(t, err.Error(), "(1,3)")
	require.Contains(t, err.Error(), "(0,4)")
}

func TestVectorized_InstanceOffsetOutOfRange(t *testing.T) {
	// The builder rejects such data; a hand-rolled system sneaks it past to
	// exercise the assembler's own guard.
	sys := &fakeVec{
		arrays: []lattice.SiteArray{{Len: 2}},
		ranges: []lattice.SiteRange{{FirstSite: 0, Norb: 1, FirstOrb: 0}},
		terms: []lattice.Term{{
			Subgraph: lattice.Subgraph{ToArray: 0, FromArray: 0, ToOffsets: []int{5}, FromOffsets: []int{0}},
		}},
		blocks: map[int]*cxmat.BlockStack{0: stack(t, [][]complex128{{1}})},
	}

	_, err := assemble.VectorizedDense(sys)
	require.ErrorIs(t, err, assemble.ErrIndexOutOfRange)
}

func TestVectorized_OffsetCountMismatch(t *testing.T) {
	// A term whose block stack outnumbers its offset slices must be rejected
	// before the write loop indexes past them.
	sys := &fakeVec{
		arrays: []lattice.SiteArray{{Len: 2}},
		ranges: []lattice.SiteRange{{FirstSite: 0, Norb: 1, FirstOrb: 0}},
		terms: []lattice.Term{{
			Subgraph: lattice.Subgraph{ToArray: 0, FromArray: 0, ToOffsets: []int{0}, FromOffsets: []int{0}},
		}},
		blocks: map[int]*cxmat.BlockStack{
			0: stack(t, [][]complex128{{1}}, [][]complex128{{2}}),
		},
	}

	_, err := assemble.VectorizedDense(sys)
	require.ErrorIs(t, err, assemble.ErrIndexOutOfRange)
}

func TestVectorizedSparseNorb_MatchesDense(t *testing.T) {
	onsite := block(t, [][]complex128{{2, 0}, {0, 2}})
	hop := block(t, [][]complex128{{-1, 0}, {0, -1}})
	vg, err := lattice.VecChain(4, onsite, hop)
	require.NoError(t, err)

	dense, denseNorbs, err := assemble.VectorizedDenseNorb(vg)
	require.NoError(t, err)
	sparse, sparseNorbs, err := assemble.VectorizedSparseNorb(vg)
	require.NoError(t, err)
	require.Equal(t, denseNorbs, sparseNorbs)
	sparseDense, err := sparse.ToDense()
	require.NoError(t, err)
	require.True(t, dense.Equal(sparseDense))
}

func TestVectorized_NilSystem(t *testing.T) {
	_, err := assemble.VectorizedDense(nil)
	require.ErrorIs(t, err, assemble.ErrNilSystem)
}
