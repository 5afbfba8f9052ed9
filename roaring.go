package bitstring

import (
	"fmt"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// Bitmap exports the positions of the set bits in [off, off+n) as a
// compressed bitmap. Positions are range-relative.
func (s *BitString) Bitmap(off, n int) (*roaring64.Bitmap, error) {
	sp, err := s.span(off, n, false)
	if err != nil {
		return nil, err
	}
	return spanBitmap(sp), nil
}

// Bitmap exports the positions of the set bits in [off, off+n) of the view
// as a compressed bitmap.
func (r *Range) Bitmap(off, n int) (*roaring64.Bitmap, error) {
	sp, err := r.span(off, n, false)
	if err != nil {
		return nil, err
	}
	return spanBitmap(sp), nil
}

func spanBitmap(sp bitalg.Span) *roaring64.Bitmap {
	bm := roaring64.New()
	c := bitalg.NewCursor(sp, false)
	for {
		v, start, _, ok := c.NextAligned()
		if !ok {
			return bm
		}
		for v != 0 {
			i := bits.LeadingZeros64(v)
			bm.Add(uint64(start + i))
			v &^= 1 << uint(63-i)
		}
	}
}

// FromBitmap builds a BitString of the given length with the bitmap's
// positions set. Every position must be below length.
func FromBitmap(bm *roaring64.Bitmap, length int) (*BitString, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidArgument, length)
	}
	if !bm.IsEmpty() {
		if max := bm.Maximum(); max >= uint64(length) {
			return nil, fmt.Errorf("%w: position %d, length %d", ErrOutOfBounds, max, length)
		}
	}
	s := New(length)
	it := bm.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		s.words[i>>6] |= mask(i)
	}
	return s, nil
}
