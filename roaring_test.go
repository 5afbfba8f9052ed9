package bitstring

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitmapExport(t *testing.T) {
	s := MustParse("01001" + "00000" + "11000")

	bm, err := s.Bitmap(0, s.Len())
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 4, 10, 11}, bm.ToArray())

	// Positions are relative to the exported range.
	bm, err = s.Bitmap(4, 8)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 6, 7}, bm.ToArray())

	_, err = s.Bitmap(10, 6)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestBitmapExportFromRange(t *testing.T) {
	s := MustParse("0010110100")
	r, err := s.Slice(2, 6)
	require.NoError(t, err)

	bm, err := r.Bitmap(0, 6)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 2, 3, 5}, bm.ToArray())
}

func TestFromBitmap(t *testing.T) {
	bm := roaring64.BitmapOf(0, 5, 64, 127)
	s, err := FromBitmap(bm, 128)
	require.NoError(t, err)

	n, err := s.Count(0, 128)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	for _, i := range []int{0, 5, 64, 127} {
		b, err := s.Bit(i)
		require.NoError(t, err)
		assert.True(t, b, "bit %d", i)
	}

	_, err = FromBitmap(bm, 127)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = FromBitmap(bm, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBitmapRoundTrip(t *testing.T) {
	orig := MustParse("100101" + "011" + "000000000000000000000000000000000000000000000000000000000001")

	bm, err := orig.Bitmap(0, orig.Len())
	require.NoError(t, err)
	back, err := FromBitmap(bm, orig.Len())
	require.NoError(t, err)

	eq, err := orig.Equal(back)
	require.NoError(t, err)
	assert.True(t, eq)
}
