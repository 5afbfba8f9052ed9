package bitalg

import "math/bits"

// Reverse reverses the bit order of the range in place. Two windows converge
// from the ends, one chunk of up to 64 bits per step; each chunk is
// bit-reversed with the word-level reversal primitive and written at its
// mirror position. Chunks never cross the midpoint, so when the length is
// odd the center bit keeps its place and every bit is written exactly once.
func Reverse(s Span) {
	half := s.N / 2
	for f := 0; f < half; {
		c := min(WordBits, half-f)
		b := s.N - f - c // mirror chunk start

		fv := s.Window(s.Off + f)
		bv := s.Window(s.Off + b)

		// Reverse64 leaves the reversed high-c chunk in the low c bits;
		// shifting realigns it to the high end for the masked write.
		sh := uint(WordBits - c)
		rf := bits.Reverse64(fv) << sh
		rb := bits.Reverse64(bv) << sh

		s.WriteBits(s.Off+b, rf, c)
		s.WriteBits(s.Off+f, rb, c)
		f += c
	}
}
