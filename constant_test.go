package bitstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	b, err := Zeros.Bit(0)
	require.NoError(t, err)
	assert.False(t, b)

	b, err = Ones.Bit(1 << 40)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = Ones.Bit(-1)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, "Zeros", Zeros.String())
	assert.Equal(t, "Ones", Ones.String())
	assert.Greater(t, Ones.Len(), 1<<50)
}

func TestConstantAsOperandAnywhere(t *testing.T) {
	// Constants serve at any offset; there is no alignment to respect.
	s := New(100)
	require.NoError(t, s.Or(63, Ones, 1<<30, 2))

	idx, ok, err := s.NextSet(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 63, idx)

	n, err := s.Count(0, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestConstantComparisons(t *testing.T) {
	s := New(64)

	eq, err := s.EqualRange(0, Zeros, 0, 64)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = s.EqualRange(0, Ones, 0, 64)
	require.NoError(t, err)
	assert.False(t, eq)

	hit, err := s.IntersectsRange(0, Ones, 0, 64)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, s.SetBit(17))
	hit, err = s.IntersectsRange(0, Ones, 0, 64)
	require.NoError(t, err)
	assert.True(t, hit)
}
