package lattice_test

import (
	"testing"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/katalvlaran/blockham/lattice"
	"github.com/stretchr/testify/require"
)

// block is a small literal helper; fixtures fail the test on bad input.
func block(t *testing.T, rows [][]complex128) *cxmat.Dense {
	t.Helper()
	b, err := cxmat.FromRows(rows)
	require.NoError(t, err)

	return b
}

func TestBuilder_AddSiteValidation(t *testing.T) {
	b := lattice.NewBuilder()

	_, err := b.AddSite(0, nil)
	require.ErrorIs(t, err, lattice.ErrBadNorb)

	// Onsite block must be square with dimension norb.
	_, err = b.AddSite(2, block(t, [][]complex128{{1, 2}}))
	require.ErrorIs(t, err, lattice.ErrBlockShape)

	id, err := b.AddSite(1, block(t, [][]complex128{{4}}))
	require.NoError(t, err)
	require.Equal(t, 0, id)
}

func TestBuilder_AddHoppingValidation(t *testing.T) {
	b := lattice.NewBuilder()
	s0, err := b.AddSite(1, nil)
	require.NoError(t, err)
	s1, err := b.AddSite(2, nil)
	require.NoError(t, err)

	require.ErrorIs(t, b.AddHopping(s0, 5, block(t, [][]complex128{{1}})), lattice.ErrSiteOutOfRange)
	require.ErrorIs(t, b.AddHopping(s0, s0, block(t, [][]complex128{{1}})), lattice.ErrSelfHopping)
	require.ErrorIs(t, b.AddHopping(s0, s1, block(t, [][]complex128{{1}})), lattice.ErrBlockShape)

	hop := block(t, [][]complex128{{1 + 2i, 0}}) // shape (norb(s0), norb(s1)) = 1×2
	require.NoError(t, b.AddHopping(s0, s1, hop))

	// Either direction of a stored pair counts as a duplicate.
	require.ErrorIs(t, b.AddHopping(s0, s1, hop), lattice.ErrHoppingExists)
	require.ErrorIs(t, b.AddHopping(s1, s0, hop.ConjTranspose()), lattice.ErrHoppingExists)
}

func TestGraph_HamiltonianResolution(t *testing.T) {
	b := lattice.NewBuilder()
	s0, err := b.AddSite(1, block(t, [][]complex128{{5}}))
	require.NoError(t, err)
	s1, err := b.AddSite(2, nil)
	require.NoError(t, err)
	hop := block(t, [][]complex128{{1 + 2i, 0}})
	require.NoError(t, b.AddHopping(s0, s1, hop))
	g := b.Build()

	// Stored onsite block.
	h, err := g.Hamiltonian(s0, s0, lattice.Args{})
	require.NoError(t, err)
	require.True(t, h.Equal(block(t, [][]complex128{{5}})))

	// Absent onsite blocks are zero-filled diagonal blocks of size norb.
	h, err = g.Hamiltonian(s1, s1, lattice.Args{})
	require.NoError(t, err)
	z, err := cxmat.NewDense(2, 2)
	require.NoError(t, err)
	require.True(t, h.Equal(z))

	// Stored direction, then synthesized conjugate transpose of it.
	h, err = g.Hamiltonian(s0, s1, lattice.Args{})
	require.NoError(t, err)
	require.True(t, h.Equal(hop))
	h, err = g.Hamiltonian(s1, s0, lattice.Args{})
	require.NoError(t, err)
	require.True(t, h.Equal(hop.ConjTranspose()))

	// Unrelated pairs have no block at all.
	b2 := lattice.NewBuilder()
	_, err = b2.AddSite(1, nil)
	require.NoError(t, err)
	_, err = b2.AddSite(1, nil)
	require.NoError(t, err)
	g2 := b2.Build()
	_, err = g2.Hamiltonian(0, 1, lattice.Args{})
	require.ErrorIs(t, err, lattice.ErrHoppingNotFound)
}

func TestGraph_NeighborsBothDirections(t *testing.T) {
	b := lattice.NewBuilder()
	s0, err := b.AddSite(1, nil)
	require.NoError(t, err)
	s1, err := b.AddSite(1, nil)
	require.NoError(t, err)
	require.NoError(t, b.AddHopping(s1, s0, block(t, [][]complex128{{1}})))
	g := b.Build()

	require.Equal(t, []int{s1}, g.Neighbors(s0))
	require.Equal(t, []int{s0}, g.Neighbors(s1))
	require.Nil(t, g.Neighbors(7))
}

func TestArgs_MutuallyExclusive(t *testing.T) {
	ok := lattice.Args{Positional: []any{1.0}}
	require.NoError(t, ok.Validate())

	ok = lattice.Args{Params: map[string]any{"t": 1.0}}
	require.NoError(t, ok.Validate())

	bad := lattice.Args{Positional: []any{1.0}, Params: map[string]any{"t": 1.0}}
	require.ErrorIs(t, bad.Validate(), lattice.ErrArgConflict)
}
