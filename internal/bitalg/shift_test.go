package bitalg

import (
	"math"
	"strings"
	"testing"
)

// refShift is the bit-at-a-time reference for Shift.
func refShift(pattern string, by int, fill bool) string {
	n := len(pattern)
	fc := byte('0')
	if fill {
		fc = '1'
	}
	out := make([]byte, n)
	for i := range out {
		src := i + by // positive amounts move bits toward index 0
		if src >= 0 && src < n {
			out[i] = pattern[src]
		} else {
			out[i] = fc
		}
	}
	return string(out)
}

func refRotate(pattern string, by int) string {
	n := len(pattern)
	if n == 0 {
		return pattern
	}
	k := by % n
	if k < 0 {
		k += n
	}
	return pattern[k:] + pattern[:k]
}

func TestShift(t *testing.T) {
	patterns := []string{
		"1",
		"10110",
		randomPattern(64, 1),
		randomPattern(130, 2),
		randomPattern(300, 3),
	}
	offs := []int{0, 3, 61, 64}
	shifts := []int{0, 1, -1, 5, -5, 63, 64, 65, -64, -65, 1000, -1000}
	for _, p := range patterns {
		for _, off := range offs {
			for _, by := range shifts {
				for _, fill := range []bool{false, true} {
					s := parseSpan(t, p, off)
					snap := outside(s)
					Shift(s, by, fill)
					want := refShift(p, by, fill)
					if got := spanString(s); got != want {
						t.Fatalf("Shift(len=%d off=%d by=%d fill=%v):\n got %s\nwant %s",
							len(p), off, by, fill, got, want)
					}
					checkOutside(t, s, snap)
				}
			}
		}
	}
}

func TestShiftMinInt(t *testing.T) {
	p := randomPattern(100, 7)
	s := parseSpan(t, p, 5)
	Shift(s, math.MinInt, true)
	// A shift of that magnitude pushes everything out: the range is all fill.
	if got := spanString(s); got != strings.Repeat("1", 100) {
		t.Fatalf("Shift(MinInt) = %s", got)
	}
}

func TestShiftPair(t *testing.T) {
	cases := []struct {
		xn, yn int
	}{
		{10, 10}, {64, 64}, {3, 130}, {130, 3}, {0, 50}, {50, 0}, {1, 1},
	}
	shifts := []int{0, 1, -1, 7, -7, 64, -64, 100, -100, 500, -500}
	for _, c := range cases {
		xp := randomPattern(c.xn, 13)
		yp := randomPattern(c.yn, 14)
		for _, by := range shifts {
			for _, fill := range []bool{false, true} {
				x := parseSpan(t, xp, 9)
				y := parseSpan(t, yp, 33)
				ShiftPair(x, y, by, fill)
				want := refShift(xp+yp, by, fill)
				got := spanString(x) + spanString(y)
				if got != want {
					t.Fatalf("ShiftPair(xn=%d yn=%d by=%d fill=%v):\n got %s\nwant %s",
						c.xn, c.yn, by, fill, got, want)
				}
			}
		}
	}
}

func TestShiftPairMinInt(t *testing.T) {
	x := parseSpan(t, randomPattern(40, 15), 0)
	y := parseSpan(t, randomPattern(25, 16), 50)
	ShiftPair(x, y, math.MinInt, false)
	if got := spanString(x) + spanString(y); got != strings.Repeat("0", 65) {
		t.Fatalf("ShiftPair(MinInt) = %s", got)
	}
}

func TestRotate(t *testing.T) {
	patterns := []string{
		"1",
		"0000101000",
		randomPattern(64, 4),
		randomPattern(200, 5),
	}
	rots := []int{0, 1, -1, 9, -9, 63, 64, 65, 200, -200, 12345, -12345, math.MinInt}
	for _, p := range patterns {
		for _, off := range []int{0, 7, 64} {
			for _, by := range rots {
				s := parseSpan(t, p, off)
				snap := outside(s)
				Rotate(s, by)
				if got, want := spanString(s), refRotate(p, by); got != want {
					t.Fatalf("Rotate(len=%d off=%d by=%d):\n got %s\nwant %s", len(p), off, by, got, want)
				}
				checkOutside(t, s, snap)
			}
		}
	}
}

func TestRotateInverse(t *testing.T) {
	p := randomPattern(170, 6)
	s := parseSpan(t, p, 21)
	for _, by := range []int{0, 1, 170, 171, -3, 1 << 40} {
		Rotate(s, by)
		Rotate(s, -by)
		if got := spanString(s); got != p {
			t.Fatalf("rotate by %d then back lost data:\n got %s\nwant %s", by, got, p)
		}
	}
}

func TestRotatePair(t *testing.T) {
	cases := []struct{ xn, yn int }{
		{10, 10}, {64, 64}, {3, 130}, {130, 3}, {0, 50}, {50, 0},
	}
	rots := []int{0, 1, -1, 13, -13, 64, 183, -183, math.MinInt}
	for _, c := range cases {
		xp := randomPattern(c.xn, 17)
		yp := randomPattern(c.yn, 18)
		for _, by := range rots {
			x := parseSpan(t, xp, 5)
			y := parseSpan(t, yp, 70)
			RotatePair(x, y, by)
			want := refRotate(xp+yp, by)
			if got := spanString(x) + spanString(y); got != want {
				t.Fatalf("RotatePair(xn=%d yn=%d by=%d):\n got %s\nwant %s", c.xn, c.yn, by, got, want)
			}
		}
	}
}

func TestReverse(t *testing.T) {
	patterns := []string{
		"",
		"1",
		"10",
		"0010100000",
		randomPattern(63, 8),
		randomPattern(64, 9),
		randomPattern(65, 10),
		randomPattern(257, 11),
	}
	for _, p := range patterns {
		for _, off := range []int{0, 1, 31, 63, 64, 100} {
			s := parseSpan(t, p, off)
			snap := outside(s)
			Reverse(s)
			want := reverseString(p)
			if got := spanString(s); got != want {
				t.Fatalf("Reverse(len=%d off=%d):\n got %s\nwant %s", len(p), off, got, want)
			}
			checkOutside(t, s, snap)
			// Involution.
			Reverse(s)
			if got := spanString(s); got != p {
				t.Fatalf("double Reverse(len=%d off=%d) != identity", len(p), off)
			}
		}
	}
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func BenchmarkCombineXor(b *testing.B) {
	dst := Span{Words: make([]uint64, 1024), Off: 13, N: 1024*64 - 30}
	src := Span{Words: make([]uint64, 1024), Off: 7, N: 1024*64 - 30}
	op := func(a, c uint64) uint64 { return a ^ c }
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Combine(dst, src, op)
	}
}

func BenchmarkShift(b *testing.B) {
	s := Span{Words: make([]uint64, 1024), Off: 13, N: 1024*64 - 30}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Shift(s, 77, false)
	}
}
