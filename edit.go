package bitstring

import (
	"fmt"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// ensureCap reallocates the word array, if needed, to cover bits logical
// bits. Growth doubles the word count so repeated appends amortize; the
// logical length and the generation counter are untouched.
func (s *BitString) ensureCap(bits int) error {
	if bits < 0 || bits > maxBits {
		return fmt.Errorf("%w: %d bits", ErrCapacity, bits)
	}
	need := (bits + bitalg.WordBits - 1) / bitalg.WordBits
	if need <= len(s.words) {
		return nil
	}
	newCap := 2 * len(s.words)
	if newCap < need {
		newCap = need
	}
	words := make([]uint64, newCap)
	copy(words, s.words)
	s.words = words
	return nil
}

// Grow reserves capacity for n additional bits without changing the
// length.
func (s *BitString) Grow(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative growth %d", ErrInvalidArgument, n)
	}
	if n > maxBits-s.length {
		return fmt.Errorf("%w: %d + %d bits", ErrCapacity, s.length, n)
	}
	return s.ensureCap(s.length + n)
}

// Trim shrinks the word array to the smallest size covering the length.
func (s *BitString) Trim() {
	need := (s.length + bitalg.WordBits - 1) / bitalg.WordBits
	if need == len(s.words) {
		return
	}
	words := make([]uint64, need)
	copy(words, s.words[:need])
	s.words = words
}

// SetLen changes the logical length directly. Newly exposed bits are
// cleared. Any length change is a structural mutation.
func (s *BitString) SetLen(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidArgument, n)
	}
	if n == s.length {
		return nil
	}
	if err := s.ensureCap(n); err != nil {
		return err
	}
	old := s.length
	s.length = n
	s.gen++
	if n > old {
		bitalg.Fill(bitalg.Span{Words: s.words, Off: old, N: n - old}, false)
	}
	return nil
}

// Append grows the string by n bits and copies src[srcOff:srcOff+n] into
// the new tail.
func (s *BitString) Append(src String, srcOff, n int) error {
	return s.insertAt(s.length, src, srcOff, n)
}

// Insert makes room at pos and copies src[srcOff:srcOff+n] into the gap.
// Bits at and after pos move toward higher indexes by n.
func (s *BitString) Insert(pos int, src String, srcOff, n int) error {
	return s.insertAt(pos, src, srcOff, n)
}

// Delete removes [off, off+n), closing the gap. Bits after the deleted
// region move toward index 0 by n.
func (s *BitString) Delete(off, n int) error {
	if err := checkRange(off, n, s.length); err != nil {
		return err
	}
	return s.deleteAt(off, n)
}

// Replace substitutes [off, off+n) with src[srcOff:srcOff+srcN], resizing
// by the length delta.
func (s *BitString) Replace(off, n int, src String, srcOff, srcN int) error {
	if err := checkRange(off, n, s.length); err != nil {
		return err
	}
	return s.replaceAt(off, n, src, srcOff, srcN)
}

func (s *BitString) insertAt(pos int, src String, srcOff, n int) error {
	if err := checkRange(pos, 0, s.length); err != nil {
		return err
	}
	if n == 0 {
		if _, err := src.span(srcOff, 0, false); err != nil {
			return err
		}
		return nil
	}
	payload, err := resolvePayload(s, src, srcOff, n)
	if err != nil {
		return err
	}
	if n > maxBits-s.length {
		return fmt.Errorf("%w: insert of %d bits at length %d", ErrCapacity, n, s.length)
	}
	if err := s.ensureCap(s.length + n); err != nil {
		return err
	}
	s.length += n
	s.gen++
	tail := bitalg.Span{Words: s.words, Off: pos, N: s.length - pos}
	bitalg.Shift(tail, -n, false)
	gap := bitalg.Span{Words: s.words, Off: pos, N: n}
	bitalg.Combine(gap, payload, bitalg.WordOp(OpCopy))
	return nil
}

func (s *BitString) deleteAt(off, n int) error {
	if n == 0 {
		return nil
	}
	tail := bitalg.Span{Words: s.words, Off: off, N: s.length - off}
	bitalg.Shift(tail, n, false)
	s.length -= n
	s.gen++
	return nil
}

func (s *BitString) replaceAt(off, n int, src String, srcOff, srcN int) error {
	if srcN < 0 {
		return fmt.Errorf("%w: negative payload length %d", ErrInvalidArgument, srcN)
	}
	if n == 0 && srcN == 0 {
		if _, err := src.span(srcOff, 0, false); err != nil {
			return err
		}
		return nil
	}
	payload, err := resolvePayload(s, src, srcOff, srcN)
	if err != nil {
		return err
	}
	delta := srcN - n
	switch {
	case delta > 0:
		if delta > maxBits-s.length {
			return fmt.Errorf("%w: replace grows length %d by %d", ErrCapacity, s.length, delta)
		}
		if err := s.ensureCap(s.length + delta); err != nil {
			return err
		}
		s.length += delta
		tail := bitalg.Span{Words: s.words, Off: off + n, N: s.length - (off + n)}
		bitalg.Shift(tail, -delta, false)
	case delta < 0:
		tail := bitalg.Span{Words: s.words, Off: off + srcN, N: s.length - (off + srcN)}
		bitalg.Shift(tail, -delta, false)
		s.length += delta
	}
	s.gen++
	if srcN > 0 {
		gap := bitalg.Span{Words: s.words, Off: off, N: srcN}
		bitalg.Combine(gap, payload, bitalg.WordOp(OpCopy))
	}
	return nil
}
