package bitstring

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// Primitive is the set of fixed-width unsigned types a BitString converts
// to and from.
type Primitive interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Parse builds a BitString from a "0101..." pattern, index 0 first.
func Parse(pattern string) (*BitString, error) {
	s := New(len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '0':
		case '1':
			s.words[i>>6] |= mask(i)
		default:
			return nil, fmt.Errorf("%w: character %q at position %d", ErrInvalidArgument, pattern[i], i)
		}
	}
	return s, nil
}

// MustParse is Parse that panics on malformed input, for fixtures and
// package-level variables.
func MustParse(pattern string) *BitString {
	s, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

// FromSlice packs a primitive slice into a BitString. Each value occupies
// its natural bit width as an unsigned big-endian quantity; values are
// packed left to right with no padding, so vals[0]'s top bit becomes bit 0.
func FromSlice[T Primitive](vals []T) *BitString {
	w := int(unsafe.Sizeof(*new(T))) * 8
	s := New(len(vals) * w)
	sp := s.fullSpan()
	for i, v := range vals {
		sp.WriteBits(i*w, uint64(v)<<uint(bitalg.WordBits-w), w)
	}
	return s
}

// ToSlice exports n bits starting at off as a primitive slice, inverse of
// FromSlice. A final partial primitive is zero-padded in its low bits.
func ToSlice[T Primitive](s String, off, n int) ([]T, error) {
	sp, err := s.span(off, n, false)
	if err != nil {
		return nil, err
	}
	w := int(unsafe.Sizeof(*new(T))) * 8
	out := make([]T, (n+w-1)/w)
	for i := range out {
		keep := n - i*w
		if keep > w {
			keep = w
		}
		raw := sp.Window(sp.Off+i*w) & bitalg.HighMask(keep)
		out[i] = T(raw >> uint(bitalg.WordBits-w))
	}
	return out, nil
}
