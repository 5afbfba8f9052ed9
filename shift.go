package bitstring

import (
	"fmt"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// Shift moves all bits by the given amount. Positive amounts move bits
// toward index 0; negative amounts move them toward higher indexes. Bits
// that leave the string are discarded and vacated positions take the fill
// bit. math.MinInt is accepted.
func (s *BitString) Shift(by int, fill bool) {
	bitalg.Shift(s.fullSpan(), by, fill)
}

// ShiftRange shifts only the bits of [off, off+n); bits outside the range
// are untouched.
func (s *BitString) ShiftRange(off, n, by int, fill bool) error {
	sp, err := s.span(off, n, true)
	if err != nil {
		return err
	}
	bitalg.Shift(sp, by, fill)
	return nil
}

// Shift moves all bits of the view by the given amount.
func (r *Range) Shift(by int, fill bool) error {
	return r.ShiftRange(0, r.length, by, fill)
}

// ShiftRange shifts only the bits of [off, off+n) of the view.
func (r *Range) ShiftRange(off, n, by int, fill bool) error {
	sp, err := r.span(off, n, true)
	if err != nil {
		return err
	}
	bitalg.Shift(sp, by, fill)
	return nil
}

// concatSpans resolves the two halves of a concatenated operation for
// writing. The halves may belong to different strings; two ranges of one
// string must not overlap, since the engine treats them as disjoint
// buffers.
func concatSpans(x String, xOff, xN int, y String, yOff, yN int) (bitalg.Span, bitalg.Span, error) {
	xs, err := x.span(xOff, xN, true)
	if err != nil {
		return bitalg.Span{}, bitalg.Span{}, err
	}
	ys, err := y.span(yOff, yN, true)
	if err != nil {
		return bitalg.Span{}, bitalg.Span{}, err
	}
	if xo := x.owner(); xo != nil && xo == y.owner() {
		if xs.Off < ys.Off+yN && ys.Off < xs.Off+xN {
			return bitalg.Span{}, bitalg.Span{}, fmt.Errorf("%w: concatenated halves overlap", ErrInvalidArgument)
		}
	}
	return xs, ys, nil
}

// ShiftConcat shifts the logical concatenation x[xOff:xOff+xN] ++
// y[yOff:yOff+yN] as one sequence: bits crossing the seam leave one half
// and enter the other. Sign and fill semantics match Shift. Both halves
// must be writable, so a Constant operand reports ErrImmutable.
func ShiftConcat(x String, xOff, xN int, y String, yOff, yN int, by int, fill bool) error {
	xs, ys, err := concatSpans(x, xOff, xN, y, yOff, yN)
	if err != nil {
		return err
	}
	bitalg.ShiftPair(xs, ys, by, fill)
	return nil
}
