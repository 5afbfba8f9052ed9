package bitalg

// Cursor walks the words of a bit range, forward or backward. Two views are
// offered:
//
//   - Next/Prev yield the physical storage words of the range in order, with
//     the margin bits at the range's own two ends (and only there, never at
//     interior word boundaries) replaced by the cursor's fill bit.
//   - NextAligned/PrevAligned yield successive 64-bit windows pre-shifted so
//     the range reads as if it were word-aligned at offset 0; trailing
//     positions beyond the range are replaced by the fill bit. A window
//     covers range positions [start, start+nb) in its high nb bits.
//
// The composition engine aligns its operands itself and reads raw windows;
// the scan algorithms (count, find-first/last, equality) use the cursor.
type Cursor struct {
	s    Span
	fill uint64 // 0 or all ones

	first, last int
	lm, rm      int

	wNext, wPrev int // physical walk state
	posF, posB   int // aligned walk state, bits consumed from each end
}

// NewCursor returns a cursor over s with the given fill bit.
func NewCursor(s Span, fill bool) *Cursor {
	c := &Cursor{s: s}
	if fill {
		c.fill = ^uint64(0)
	}
	if s.N > 0 {
		c.first, c.last, c.lm, c.rm = Margins(s.Off, s.N)
		c.wNext, c.wPrev = c.first, c.last
	} else {
		c.wNext, c.wPrev = 1, 0 // exhausted
	}
	return c
}

// fillMargins replaces the out-of-range margin bits of word w with the fill
// bit. Only the first and last word of the range carry margins.
func (c *Cursor) fillMargins(w int, v uint64) uint64 {
	if w == c.first && c.lm > 0 {
		m := HighMask(c.lm)
		v = v&^m | c.fill&m
	}
	if w == c.last && c.rm > 0 {
		m := LowMask(c.rm)
		v = v&^m | c.fill&m
	}
	return v
}

// Next returns the next physical word of the range walking forward.
func (c *Cursor) Next() (uint64, bool) {
	if c.wNext > c.wPrev {
		return 0, false
	}
	v := c.fillMargins(c.wNext, c.s.word(c.wNext))
	c.wNext++
	return v, true
}

// Prev returns the next physical word of the range walking backward.
func (c *Cursor) Prev() (uint64, bool) {
	if c.wPrev < c.wNext {
		return 0, false
	}
	v := c.fillMargins(c.wPrev, c.s.word(c.wPrev))
	c.wPrev--
	return v, true
}

// NextAligned returns the next window of the range walking forward, shifted
// so the range appears aligned at offset 0. start is the range-relative
// position of the window's first bit and nb the number of range bits in it.
func (c *Cursor) NextAligned() (v uint64, start, nb int, ok bool) {
	if c.posF >= c.s.N {
		return 0, 0, 0, false
	}
	start = c.posF
	nb = min(WordBits, c.s.N-start)
	m := HighMask(nb)
	v = c.s.Window(c.s.Off+start)&m | c.fill&^m
	c.posF = start + nb
	return v, start, nb, true
}

// PrevAligned returns the next window walking backward from the end of the
// range, with the same alignment contract as NextAligned.
func (c *Cursor) PrevAligned() (v uint64, start, nb int, ok bool) {
	if c.posB >= c.s.N {
		return 0, 0, 0, false
	}
	nb = min(WordBits, c.s.N-c.posB)
	start = c.s.N - c.posB - nb
	m := HighMask(nb)
	v = c.s.Window(c.s.Off+start)&m | c.fill&^m
	c.posB += nb
	return v, start, nb, true
}
