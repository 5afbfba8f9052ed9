package bitalg

import (
	"math/rand"
	"testing"
)

// parseSpan builds a span over fresh storage holding the pattern at the
// given bit offset, with pseudo-random junk in the surrounding bits so
// margin violations show up.
func parseSpan(t *testing.T, pattern string, off int) Span {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(off)*31 + int64(len(pattern))))
	words := make([]uint64, (off+len(pattern)+63)/64+1)
	for i := range words {
		words[i] = rng.Uint64()
	}
	s := Span{Words: words, Off: off, N: len(pattern)}
	for i, ch := range pattern {
		putBit(s, i, ch == '1')
	}
	return s
}

func putBit(s Span, rel int, v bool) {
	w := (s.Off + rel) >> 6
	m := uint64(1) << (63 - uint((s.Off+rel)&63))
	if v {
		s.Words[w] |= m
	} else {
		s.Words[w] &^= m
	}
}

func getBit(s Span, rel int) bool {
	w := (s.Off + rel) >> 6
	return s.Words[w]&(1<<(63-uint((s.Off+rel)&63))) != 0
}

func spanString(s Span) string {
	out := make([]byte, s.N)
	for i := range out {
		out[i] = '0'
		if getBit(s, i) {
			out[i] = '1'
		}
	}
	return string(out)
}

// outside snapshots every bit that lies outside the span's range, so tests
// can assert that an operation left them untouched.
func outside(s Span) []uint64 {
	res := make([]uint64, len(s.Words))
	for i, w := range s.Words {
		res[i] = w & ^insideMask(s, i)
	}
	return res
}

func insideMask(s Span, w int) uint64 {
	if s.N == 0 {
		return 0
	}
	first, last, lm, rm := Margins(s.Off, s.N)
	if w < first || w > last {
		return 0
	}
	return rangeMask(w, first, last, lm, rm)
}

func checkOutside(t *testing.T, s Span, snap []uint64) {
	t.Helper()
	for i := range s.Words {
		m := ^insideMask(s, i)
		if s.Words[i]&m != snap[i] {
			t.Fatalf("word %d: bits outside the range changed: got %016x want %016x", i, s.Words[i]&m, snap[i])
		}
	}
}

func TestMargins(t *testing.T) {
	tests := []struct {
		off, n              int
		first, last, lm, rm int
	}{
		{0, 64, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 63},
		{63, 1, 0, 0, 63, 0},
		{63, 2, 0, 1, 63, 63},
		{10, 100, 0, 1, 10, 18},
		{64, 64, 1, 1, 0, 0},
		{70, 200, 1, 4, 6, 58},
	}
	for _, tt := range tests {
		first, last, lm, rm := Margins(tt.off, tt.n)
		if first != tt.first || last != tt.last || lm != tt.lm || rm != tt.rm {
			t.Errorf("Margins(%d, %d) = %d,%d,%d,%d, want %d,%d,%d,%d",
				tt.off, tt.n, first, last, lm, rm, tt.first, tt.last, tt.lm, tt.rm)
		}
	}
}

func TestMasks(t *testing.T) {
	if HighMask(0) != 0 || LowMask(0) != 0 {
		t.Fatal("empty masks must be zero")
	}
	if HighMask(64) != ^uint64(0) || LowMask(64) != ^uint64(0) {
		t.Fatal("full masks must be all ones")
	}
	if HighMask(1) != 1<<63 {
		t.Fatalf("HighMask(1) = %016x", HighMask(1))
	}
	if LowMask(1) != 1 {
		t.Fatalf("LowMask(1) = %016x", LowMask(1))
	}
	for n := 0; n <= 64; n++ {
		if HighMask(n)^LowMask(64-n) != ^uint64(0) && n != 0 && n != 64 {
			t.Fatalf("HighMask(%d) and LowMask(%d) must partition the word", n, 64-n)
		}
	}
}

func TestWindow(t *testing.T) {
	s := Span{Words: []uint64{0x0123456789ABCDEF, 0xFEDCBA9876543210}, Off: 0, N: 128}
	if got := s.Window(0); got != 0x0123456789ABCDEF {
		t.Fatalf("Window(0) = %016x", got)
	}
	if got := s.Window(4); got != 0x123456789ABCDEFF {
		t.Fatalf("Window(4) = %016x", got)
	}
	if got := s.Window(64); got != 0xFEDCBA9876543210 {
		t.Fatalf("Window(64) = %016x", got)
	}
	// Past the storage reads as zero.
	if got := s.Window(120); got != 0x1000000000000000 {
		t.Fatalf("Window(120) = %016x", got)
	}
	// Negative positions clamp to zero words before the storage.
	if got := s.Window(-4); got != 0x0123456789ABCDE {
		t.Fatalf("Window(-4) = %016x", got)
	}
	// Constant spans repeat their word everywhere.
	c := Span{CW: ^uint64(0), N: 1 << 20}
	if got := c.Window(-100); got != ^uint64(0) {
		t.Fatalf("constant Window(-100) = %016x", got)
	}
	if got := c.Window(1 << 19); got != ^uint64(0) {
		t.Fatalf("constant Window = %016x", got)
	}
}

func TestWriteBits(t *testing.T) {
	for _, off := range []int{0, 1, 7, 60, 63, 64, 100} {
		for _, n := range []int{1, 5, 63, 64} {
			s := Span{Words: make([]uint64, 4), Off: 0, N: 256}
			v := uint64(0xAAAAAAAAAAAAAAAA)
			s.WriteBits(off, v, n)
			if got := s.Window(off) &^ LowMask(64-n); got != v&^LowMask(64-n) {
				t.Fatalf("WriteBits(off=%d, n=%d): read back %016x", off, n, got)
			}
			// Everything outside [off, off+n) stays zero.
			total := 0
			for _, w := range s.Words {
				for b := 0; b < 64; b++ {
					if w&(1<<uint(63-b)) != 0 {
						total++
					}
				}
			}
			want := 0
			for i := 0; i < n; i++ {
				if v&(1<<uint(63-i)) != 0 {
					want++
				}
			}
			if total != want {
				t.Fatalf("WriteBits(off=%d, n=%d): %d bits set, want %d", off, n, total, want)
			}
		}
	}
}

func TestFill(t *testing.T) {
	for _, tt := range []struct{ off, n int }{
		{0, 10}, {3, 10}, {60, 10}, {5, 64}, {7, 130}, {64, 64}, {1, 0},
	} {
		s := parseSpan(t, randomPattern(tt.n, 3), tt.off)
		snap := outside(s)
		Fill(s, true)
		for i := 0; i < tt.n; i++ {
			if !getBit(s, i) {
				t.Fatalf("Fill(true) off=%d n=%d: bit %d clear", tt.off, tt.n, i)
			}
		}
		checkOutside(t, s, snap)
		Fill(s, false)
		for i := 0; i < tt.n; i++ {
			if getBit(s, i) {
				t.Fatalf("Fill(false) off=%d n=%d: bit %d set", tt.off, tt.n, i)
			}
		}
		checkOutside(t, s, snap)
	}
}

func randomPattern(n int, seed int64) string {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = '0' + byte(rng.Intn(2))
	}
	return string(b)
}

func TestCombineMisaligned(t *testing.T) {
	ops := map[string]WordOp{
		"and":  func(a, b uint64) uint64 { return a & b },
		"or":   func(a, b uint64) uint64 { return a | b },
		"xor":  func(a, b uint64) uint64 { return a ^ b },
		"copy": func(_, b uint64) uint64 { return b },
	}
	ref := map[string]func(a, b bool) bool{
		"and":  func(a, b bool) bool { return a && b },
		"or":   func(a, b bool) bool { return a || b },
		"xor":  func(a, b bool) bool { return a != b },
		"copy": func(_, b bool) bool { return b },
	}
	offs := []struct{ dstOff, srcOff, n int }{
		{0, 0, 64},
		{3, 3, 10},
		{3, 17, 100},
		{17, 3, 100},
		{0, 63, 130},
		{63, 0, 130},
		{5, 5, 1},
		{10, 70, 250},
	}
	for name, op := range ops {
		for _, tt := range offs {
			dp := randomPattern(tt.n, 11)
			sp := randomPattern(tt.n, 12)
			dst := parseSpan(t, dp, tt.dstOff)
			src := parseSpan(t, sp, tt.srcOff)
			snap := outside(dst)
			Combine(dst, src, op)
			for i := 0; i < tt.n; i++ {
				want := ref[name](dp[i] == '1', sp[i] == '1')
				if getBit(dst, i) != want {
					t.Fatalf("%s dstOff=%d srcOff=%d n=%d: bit %d wrong", name, tt.dstOff, tt.srcOff, tt.n, i)
				}
			}
			checkOutside(t, dst, snap)
		}
	}
}

func TestCombineConstantSource(t *testing.T) {
	dst := parseSpan(t, randomPattern(200, 5), 9)
	Combine(dst, Span{CW: ^uint64(0), N: 200}, func(a, b uint64) uint64 { return a | b })
	for i := 0; i < 200; i++ {
		if !getBit(dst, i) {
			t.Fatalf("or with all-ones constant: bit %d clear", i)
		}
	}
}

func TestEqualIntersects(t *testing.T) {
	a := parseSpan(t, "110010111", 5)
	b := parseSpan(t, "110010111", 61)
	c := parseSpan(t, "110010110", 0)
	if !Equal(a, b) {
		t.Fatal("identical misaligned ranges must compare equal")
	}
	if Equal(a, c) {
		t.Fatal("ranges differing in the last bit must not compare equal")
	}
	if !Intersects(a, b) {
		t.Fatal("overlapping content must intersect")
	}
	d := parseSpan(t, "001101000", 37)
	if Intersects(a, d) {
		t.Fatal("disjoint set bits must not intersect")
	}
	z := parseSpan(t, "", 0)
	if !Equal(z, Span{N: 0}) {
		t.Fatal("empty ranges compare equal")
	}
}

func TestCountFind(t *testing.T) {
	tests := []struct {
		pattern string
		off     int
	}{
		{"0000000000", 3},
		{"1111111111", 60},
		{"0010010001", 7},
		{"1000000000", 63},
		{randomPattern(300, 9), 31},
	}
	for _, tt := range tests {
		s := parseSpan(t, tt.pattern, tt.off)
		wantCount, wantFS, wantLS, wantFC := 0, -1, -1, -1
		for i, ch := range tt.pattern {
			if ch == '1' {
				wantCount++
				if wantFS < 0 {
					wantFS = i
				}
				wantLS = i
			} else if wantFC < 0 {
				wantFC = i
			}
		}
		if got := Count(s); got != wantCount {
			t.Errorf("Count(%q@%d) = %d, want %d", tt.pattern, tt.off, got, wantCount)
		}
		if got := FindFirst(s, true); got != wantFS {
			t.Errorf("FindFirst(set) = %d, want %d", got, wantFS)
		}
		if got := FindLast(s, true); got != wantLS {
			t.Errorf("FindLast(set) = %d, want %d", got, wantLS)
		}
		if got := FindFirst(s, false); got != wantFC {
			t.Errorf("FindFirst(clear) = %d, want %d", got, wantFC)
		}
	}
}

func TestCursorPhysicalWords(t *testing.T) {
	// A range covering bits [4, 132) of three words, fill bit one: the four
	// leading margin bits and the trailing margin bits read as ones, interior
	// word boundaries are untouched.
	s := Span{Words: []uint64{0, 0, 0}, Off: 4, N: 128}
	c := NewCursor(s, true)
	v, ok := c.Next()
	if !ok || v != HighMask(4) {
		t.Fatalf("first word = %016x, ok=%v", v, ok)
	}
	v, ok = c.Next()
	if !ok || v != 0 {
		t.Fatalf("interior word = %016x, ok=%v", v, ok)
	}
	v, ok = c.Next()
	if !ok || v != LowMask(60) {
		t.Fatalf("last word = %016x, ok=%v", v, ok)
	}
	if _, ok = c.Next(); ok {
		t.Fatal("cursor must be exhausted")
	}

	back := NewCursor(s, true)
	v, ok = back.Prev()
	if !ok || v != LowMask(60) {
		t.Fatalf("backward first = %016x, ok=%v", v, ok)
	}
}

func TestCursorAligned(t *testing.T) {
	pattern := randomPattern(150, 21)
	s := parseSpan(t, pattern, 13)
	c := NewCursor(s, false)
	seen := 0
	for {
		v, start, nb, ok := c.NextAligned()
		if !ok {
			break
		}
		if start != seen {
			t.Fatalf("start = %d, want %d", start, seen)
		}
		for i := 0; i < nb; i++ {
			got := v&(1<<uint(63-i)) != 0
			if got != (pattern[start+i] == '1') {
				t.Fatalf("aligned window bit %d wrong", start+i)
			}
		}
		for i := nb; i < 64; i++ {
			if v&(1<<uint(63-i)) != 0 {
				t.Fatalf("fill bit %d not zero", i)
			}
		}
		seen += nb
	}
	if seen != 150 {
		t.Fatalf("consumed %d bits, want 150", seen)
	}

	b := NewCursor(s, false)
	v, start, nb, ok := b.PrevAligned()
	if !ok || start != 150-64 || nb != 64 {
		t.Fatalf("PrevAligned start=%d nb=%d ok=%v", start, nb, ok)
	}
	_ = v
	_, start, nb, _ = b.PrevAligned()
	if start != 150-128 || nb != 64 {
		t.Fatalf("second PrevAligned start=%d nb=%d", start, nb)
	}
	_, start, nb, ok = b.PrevAligned()
	if !ok || start != 0 || nb != 22 {
		t.Fatalf("final PrevAligned start=%d nb=%d ok=%v", start, nb, ok)
	}
	if _, _, _, ok = b.PrevAligned(); ok {
		t.Fatal("backward cursor must be exhausted")
	}
}
