package cxmat_test

import (
	"testing"

	"github.com/katalvlaran/blockham/cxmat"
	"github.com/stretchr/testify/require"
)

func TestStackFromBlocks_ShapeChecked(t *testing.T) {
	a, err := cxmat.FromRows([][]complex128{{1, 2}})
	require.NoError(t, err)
	b, err := cxmat.FromRows([][]complex128{{3}, {4}})
	require.NoError(t, err)

	_, err = cxmat.StackFromBlocks(a, b)
	require.ErrorIs(t, err, cxmat.ErrDimensionMismatch)

	s, err := cxmat.StackFromBlocks(a, a)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	require.Equal(t, 1, s.BlockRows())
	require.Equal(t, 2, s.BlockCols())
}

func TestBlockStack_BlockIsView(t *testing.T) {
	s, err := cxmat.NewBlockStack(2, 2, 2)
	require.NoError(t, err)

	b0, err := s.Block(0)
	require.NoError(t, err)
	require.NoError(t, b0.Set(1, 1, 7i))

	// The view shares the stack's backing storage.
	again, err := s.Block(0)
	require.NoError(t, err)
	v, err := again.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 7i, v)

	_, err = s.Block(2)
	require.ErrorIs(t, err, cxmat.ErrIndexOutOfBounds)
}

func TestBlockStack_ConjTranspose(t *testing.T) {
	b, err := cxmat.FromRows([][]complex128{{1 + 2i, 0}})
	require.NoError(t, err)
	s, err := cxmat.StackFromBlocks(b, b)
	require.NoError(t, err)

	ct := s.ConjTranspose()
	require.Equal(t, 2, ct.Len())
	require.Equal(t, 2, ct.BlockRows())
	require.Equal(t, 1, ct.BlockCols())

	for i := 0; i < ct.Len(); i++ {
		blk, berr := ct.Block(i)
		require.NoError(t, berr)
		require.True(t, blk.Equal(b.ConjTranspose()))
	}
}

func TestBlockStack_SetBlock(t *testing.T) {
	s, err := cxmat.NewBlockStack(1, 1, 2)
	require.NoError(t, err)

	good, err := cxmat.FromRows([][]complex128{{5, 6i}})
	require.NoError(t, err)
	require.NoError(t, s.SetBlock(0, good))

	bad, err := cxmat.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, s.SetBlock(0, bad), cxmat.ErrDimensionMismatch)
	require.ErrorIs(t, s.SetBlock(1, good), cxmat.ErrIndexOutOfBounds)
}
