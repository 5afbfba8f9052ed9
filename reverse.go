package bitstring

import "github.com/hupe1980/bitstring/internal/bitalg"

// Reverse reverses the order of all bits in place.
func (s *BitString) Reverse() {
	bitalg.Reverse(s.fullSpan())
}

// ReverseRange reverses the bit order of [off, off+n); bits outside the
// range are untouched.
func (s *BitString) ReverseRange(off, n int) error {
	sp, err := s.span(off, n, true)
	if err != nil {
		return err
	}
	bitalg.Reverse(sp)
	return nil
}

// Reverse reverses the order of all bits of the view.
func (r *Range) Reverse() error {
	return r.ReverseRange(0, r.length)
}

// ReverseRange reverses the bit order of [off, off+n) of the view.
func (r *Range) ReverseRange(off, n int) error {
	sp, err := r.span(off, n, true)
	if err != nil {
		return err
	}
	bitalg.Reverse(sp)
	return nil
}
