package bitalg

import "math"

// opCopy is the word operator used for internal payload moves.
func opCopy(_, b uint64) uint64 { return b }

// Shift moves the bits of the range by |by| positions in place. Positive
// amounts move bits toward index 0, negative amounts toward higher indexes.
// Bits that exit the range are discarded and the vacated positions at the
// opposite end take the fill bit. math.MinInt, whose magnitude is not
// representable, is split into two opposite-direction shifts of 1 and
// math.MaxInt.
func Shift(s Span, by int, fill bool) {
	if s.N == 0 || by == 0 {
		return
	}
	if by == math.MinInt {
		Shift(s, -1, fill)
		Shift(s, math.MinInt+1, fill)
		return
	}
	if by > 0 {
		shiftLow(s, by, fill)
	} else {
		shiftHigh(s, -by, fill)
	}
}

// shiftLow moves bits toward index 0 by k > 0. Words are walked in ascending
// order so every window is read before any word it overlaps is rewritten.
func shiftLow(s Span, k int, fill bool) {
	if k >= s.N {
		Fill(s, fill)
		return
	}
	first, last, lm, rm := Margins(s.Off, s.N)
	srcBit := s.Off - lm + k
	for w := first; w <= last; w++ {
		res := s.Window(srcBit)
		m := rangeMask(w, first, last, lm, rm)
		s.Words[w] = s.Words[w]&^m | res&m
		srcBit += WordBits
	}
	Fill(s.Sub(s.N-k, k), fill)
}

// shiftHigh moves bits toward higher indexes by k > 0, walking words in
// descending order for the same read-before-write reason.
func shiftHigh(s Span, k int, fill bool) {
	if k >= s.N {
		Fill(s, fill)
		return
	}
	first, last, lm, rm := Margins(s.Off, s.N)
	for w := last; w >= first; w-- {
		res := s.Window(w*WordBits - k)
		m := rangeMask(w, first, last, lm, rm)
		s.Words[w] = s.Words[w]&^m | res&m
	}
	Fill(s.Sub(0, k), fill)
}

// ShiftPair shifts the logical concatenation x||y as one sequence: bits
// leaving the inner end of one buffer are carried into the adjacent end of
// the other. Sign, fill, and sentinel rules match Shift. The two spans must
// not overlap.
func ShiftPair(x, y Span, by int, fill bool) {
	if by == 0 {
		return
	}
	if by == math.MinInt {
		ShiftPair(x, y, -1, fill)
		ShiftPair(x, y, math.MinInt+1, fill)
		return
	}
	if by > 0 {
		pairLow(x, y, by, fill)
	} else {
		pairHigh(x, y, -by, fill)
	}
}

// pairLow shifts x||y toward index 0 by k > 0: the head of y crosses the
// seam into the tail of x. The receiving buffer is shifted first to expose
// the vacated positions, the carried bits are copied across the seam, and
// the source buffer is shifted last.
func pairLow(x, y Span, k int, fill bool) {
	if k >= x.N+y.N {
		Fill(x, fill)
		Fill(y, fill)
		return
	}
	if k < x.N {
		shiftLow(x, k, fill)
		if m := min(k, y.N); m > 0 {
			Combine(x.Sub(x.N-k, m), y.Sub(0, m), opCopy)
		}
	} else {
		j := k - x.N // first y bit that lands in x
		m := 0
		if j < y.N {
			m = min(x.N, y.N-j)
		}
		if m > 0 {
			Combine(x.Sub(0, m), y.Sub(j, m), opCopy)
		}
		if m < x.N {
			Fill(x.Sub(m, x.N-m), fill)
		}
	}
	Shift(y, k, fill)
}

// pairHigh shifts x||y toward higher indexes by k > 0: the tail of x crosses
// the seam into the head of y.
func pairHigh(x, y Span, k int, fill bool) {
	if k >= x.N+y.N {
		Fill(x, fill)
		Fill(y, fill)
		return
	}
	shiftHigh(y, k, fill)
	a := max(0, k-x.N)
	b := min(k, y.N)
	if b > a {
		Combine(y.Sub(a, b-a), x.Sub(x.N-k+a, b-a), opCopy)
	}
	Shift(x, -k, fill)
}

// Rotate rotates the bits of the range by |by| positions in place, positive
// toward index 0, with no data loss. The bits about to rotate off one end
// are spilled into a temporary scratch string by a zero-filled two-buffer
// shift, then written back into the positions the shift vacated at the far
// end. Reducing by modulo the length also disposes of math.MinInt.
func Rotate(s Span, by int) {
	if s.N == 0 {
		return
	}
	k := by % s.N
	if k < 0 {
		k += s.N
	}
	if k == 0 {
		return
	}
	spill := scratch(k)
	ShiftPair(spill, s, k, false)
	Combine(s.Sub(s.N-k, k), spill, opCopy)
}

// RotatePair rotates the concatenation x||y by |by| positions, positive
// toward index 0. The spill may straddle the seam on both capture and
// write-back, so each is split across the two buffers as needed.
func RotatePair(x, y Span, by int) {
	n := x.N + y.N
	if n == 0 {
		return
	}
	k := by % n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	spill := scratch(k)
	if k <= x.N {
		Combine(spill, x.Sub(0, k), opCopy)
	} else {
		Combine(spill.Sub(0, x.N), x, opCopy)
		Combine(spill.Sub(x.N, k-x.N), y.Sub(0, k-x.N), opCopy)
	}
	ShiftPair(x, y, k, false)
	at := n - k // absolute position of the vacated tail
	if at >= x.N {
		Combine(y.Sub(at-x.N, k), spill, opCopy)
	} else {
		cx := x.N - at
		Combine(x.Sub(at, cx), spill.Sub(0, cx), opCopy)
		Combine(y.Sub(0, k-cx), spill.Sub(cx, k-cx), opCopy)
	}
}

// scratch allocates a zeroed n-bit spill buffer.
func scratch(n int) Span {
	return Span{Words: make([]uint64, (n+WordBits-1)/WordBits), N: n}
}
