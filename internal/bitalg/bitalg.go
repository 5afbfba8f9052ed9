// Package bitalg implements the word-packed bit-range primitives underlying
// the public bitstring types: index/margin algebra, unaligned 64-bit window
// reads and masked writes, the generic bitwise composition walk, shifting,
// rotation, reversal, and range scans.
//
// All functions operate on a Span, the resolved form of a sub-range: a word
// slice (or a repeating constant word), an absolute bit offset, and a length.
// Bits are stored most-significant-bit first within each 64-bit word, so bit
// i lives in word i>>6 under the mask 1 << (63 - i&63). Validation happens in
// the callers; everything here assumes in-range arguments.
package bitalg

import "math/bits"

// WordBits is the number of bits per storage word.
const WordBits = 64

// Span is a resolved view of a contiguous bit range.
type Span struct {
	// Words is the backing storage. A nil Words marks a constant span whose
	// every word reads as CW.
	Words []uint64

	// CW is the repeating word value for constant spans.
	CW uint64

	// Off is the absolute bit offset of the first bit of the range.
	Off int

	// N is the length of the range in bits.
	N int
}

// Sub returns the sub-span [rel, rel+n) of s.
func (s Span) Sub(rel, n int) Span {
	return Span{Words: s.Words, CW: s.CW, Off: s.Off + rel, N: n}
}

// word returns the word at index i. Out-of-bounds indexes read as zero so
// that margin reads near the ends of the storage are safe; the callers mask
// those bits away.
func (s Span) word(i int) uint64 {
	if s.Words == nil {
		return s.CW
	}
	if i < 0 || i >= len(s.Words) {
		return 0
	}
	return s.Words[i]
}

// Window returns the 64 bits starting at absolute bit position bit, which
// may be unaligned and may reach before or past the storage. Negative
// positions work: >> on a signed int floors and bit&63 is the positive
// remainder, so the word/offset split stays consistent across zero.
func (s Span) Window(bit int) uint64 {
	w := bit >> 6
	sh := uint(bit & 63)
	if sh == 0 {
		return s.word(w)
	}
	return s.word(w)<<sh | s.word(w+1)>>(64-sh)
}

// WriteBits stores the high n bits of v at absolute bit position bit,
// touching at most two words and leaving all other bits untouched.
func (s Span) WriteBits(bit int, v uint64, n int) {
	if n <= 0 {
		return
	}
	w := bit >> 6
	sh := uint(bit & 63)
	m := HighMask(n) >> sh
	s.Words[w] = s.Words[w]&^m | (v>>sh)&m
	if rem := int(sh) + n - 64; rem > 0 {
		m = HighMask(rem)
		s.Words[w+1] = s.Words[w+1]&^m | (v<<(64-sh))&m
	}
}

// HighMask returns a word with the top n bits set, for n in [0, 64].
func HighMask(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return ^uint64(0)
	}
	return ^uint64(0) << (64 - uint(n))
}

// LowMask returns a word with the bottom n bits set, for n in [0, 64].
func LowMask(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return ^uint64(0)
	}
	return ^uint64(0) >> (64 - uint(n))
}

// Margins decomposes a non-empty range into its word walk parameters:
// the first and last word indexes, the left margin (bits of the first word
// before the range) and the right margin (bits of the last word after the
// range). Every algorithm in this package threads these four values instead
// of recomputing them.
func Margins(off, n int) (first, last, lm, rm int) {
	first = off >> 6
	last = (off + n - 1) >> 6
	lm = off & 63
	rm = 63 - ((off + n - 1) & 63)
	return first, last, lm, rm
}

// rangeMask returns the in-range mask for word w of a walk parameterized by
// Margins: all bits, minus the left margin on the first word and the right
// margin on the last.
func rangeMask(w, first, last, lm, rm int) uint64 {
	m := ^uint64(0)
	if w == first {
		m >>= uint(lm)
	}
	if w == last {
		m &^= LowMask(rm)
	}
	return m
}

// WordOp is a binary word operator applied by Combine. The first argument
// is the destination word, the second the alignment-corrected source word.
type WordOp func(a, b uint64) uint64

// Combine rewrites dst in place as op(dstBit, srcBit) for every bit of the
// range. dst and src must have equal length and dst must be writable; bits
// outside dst are untouched. The source is realigned to the destination one
// window at a time, so the two ranges may live in different strings at
// different bit offsets. Destination words are walked in ascending order.
func Combine(dst, src Span, op WordOp) {
	if dst.N == 0 {
		return
	}
	first, last, lm, rm := Margins(dst.Off, dst.N)
	srcBit := src.Off - lm
	for w := first; w <= last; w++ {
		cur := dst.Words[w]
		res := op(cur, src.Window(srcBit))
		m := rangeMask(w, first, last, lm, rm)
		dst.Words[w] = cur&^m | res&m
		srcBit += WordBits
	}
}

// Fill sets every bit of the range to the fill bit.
func Fill(s Span, bit bool) {
	if s.N == 0 {
		return
	}
	first, last, lm, rm := Margins(s.Off, s.N)
	for w := first; w <= last; w++ {
		m := rangeMask(w, first, last, lm, rm)
		if bit {
			s.Words[w] |= m
		} else {
			s.Words[w] &^= m
		}
	}
}

// Equal reports whether two equal-length ranges hold the same bits,
// stopping at the first mismatching window.
func Equal(a, b Span) bool {
	ca, cb := NewCursor(a, false), NewCursor(b, false)
	for {
		av, _, _, ok := ca.NextAligned()
		if !ok {
			return true
		}
		bv, _, _, _ := cb.NextAligned()
		if av != bv {
			return false
		}
	}
}

// Intersects reports whether two equal-length ranges share a set bit at any
// common position, stopping at the first intersecting window.
func Intersects(a, b Span) bool {
	ca, cb := NewCursor(a, false), NewCursor(b, false)
	for {
		av, _, _, ok := ca.NextAligned()
		if !ok {
			return false
		}
		bv, _, _, _ := cb.NextAligned()
		if av&bv != 0 {
			return true
		}
	}
}

// Count returns the number of set bits in the range.
func Count(s Span) int {
	c := NewCursor(s, false)
	n := 0
	for {
		v, ok := c.Next()
		if !ok {
			return n
		}
		n += bits.OnesCount64(v)
	}
}

// FindFirst returns the lowest range-relative index holding the wanted bit
// value, or -1.
func FindFirst(s Span, bit bool) int {
	c := NewCursor(s, !bit)
	for {
		v, start, _, ok := c.NextAligned()
		if !ok {
			return -1
		}
		if !bit {
			v = ^v
		}
		if v != 0 {
			return start + bits.LeadingZeros64(v)
		}
	}
}

// FindLast returns the highest range-relative index holding the wanted bit
// value, or -1.
func FindLast(s Span, bit bool) int {
	c := NewCursor(s, !bit)
	for {
		v, start, _, ok := c.PrevAligned()
		if !ok {
			return -1
		}
		if !bit {
			v = ^v
		}
		if v != 0 {
			return start + 63 - bits.TrailingZeros64(v)
		}
	}
}
