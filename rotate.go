package bitstring

import "github.com/hupe1980/bitstring/internal/bitalg"

// Rotate rotates all bits by the given amount. Positive amounts rotate
// toward index 0; bits leaving that end re-enter at the far end. Any
// amount is accepted, including math.MinInt, and is reduced modulo the
// length. Rotation never loses data: Rotate(by) followed by Rotate(-by) is
// the identity.
func (s *BitString) Rotate(by int) {
	bitalg.Rotate(s.fullSpan(), by)
}

// RotateRange rotates only the bits of [off, off+n); bits outside the
// range are untouched.
func (s *BitString) RotateRange(off, n, by int) error {
	sp, err := s.span(off, n, true)
	if err != nil {
		return err
	}
	bitalg.Rotate(sp, by)
	return nil
}

// Rotate rotates all bits of the view by the given amount.
func (r *Range) Rotate(by int) error {
	return r.RotateRange(0, r.length, by)
}

// RotateRange rotates only the bits of [off, off+n) of the view.
func (r *Range) RotateRange(off, n, by int) error {
	sp, err := r.span(off, n, true)
	if err != nil {
		return err
	}
	bitalg.Rotate(sp, by)
	return nil
}

// RotateConcat rotates the logical concatenation x[xOff:xOff+xN] ++
// y[yOff:yOff+yN] as one sequence. Both halves must be writable; two
// ranges of one string must not overlap.
func RotateConcat(x String, xOff, xN int, y String, yOff, yN int, by int) error {
	xs, ys, err := concatSpans(x, xOff, xN, y, yOff, yN)
	if err != nil {
		return err
	}
	bitalg.RotatePair(xs, ys, by)
	return nil
}
