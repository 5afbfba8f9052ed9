package bitstring

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// maxBits caps the logical length so word-index arithmetic cannot overflow.
const maxBits = math.MaxInt - (bitalg.WordBits - 1)

// BitString is a mutable, resizable sequence of bits packed into 64-bit
// words, most significant bit first within each word: bit 0 is the top bit
// of word 0. Bits at indexes >= Len() are unspecified scratch space.
//
// A BitString is not safe for concurrent use. The generation counter
// detects single-threaded aliasing conflicts through Range views; it is not
// a synchronization primitive.
type BitString struct {
	words  []uint64
	length int
	gen    uint64
}

// New creates a BitString of the given length with all bits zero.
// It panics if length is negative, mirroring make.
func New(length int) *BitString {
	if length < 0 {
		panic("bitstring: negative length")
	}
	return &BitString{
		words:  make([]uint64, (length+bitalg.WordBits-1)/bitalg.WordBits),
		length: length,
	}
}

// FromWords wraps an existing word slice without copying. length must fit
// in the slice; the caller gives up ownership of the words.
func FromWords(words []uint64, length int) (*BitString, error) {
	if length < 0 || length > len(words)*bitalg.WordBits {
		return nil, fmt.Errorf("%w: length %d does not fit %d words", ErrInvalidArgument, length, len(words))
	}
	return &BitString{words: words, length: length}, nil
}

// Len returns the number of valid bits.
func (s *BitString) Len() int { return s.length }

// Words returns the backing word slice covering the valid bits. The slice
// aliases the live storage: writes to it bypass generation tracking.
func (s *BitString) Words() []uint64 {
	return s.words[:(s.length+bitalg.WordBits-1)/bitalg.WordBits]
}

func (s *BitString) owner() *BitString { return s }

func (s *BitString) span(off, n int, _ bool) (bitalg.Span, error) {
	if err := checkRange(off, n, s.length); err != nil {
		return bitalg.Span{}, err
	}
	return bitalg.Span{Words: s.words, Off: off, N: n}, nil
}

// fullSpan covers [0, length) without validation, for internal callers that
// already hold a consistent length.
func (s *BitString) fullSpan() bitalg.Span {
	return bitalg.Span{Words: s.words, Off: 0, N: s.length}
}

func mask(i int) uint64 {
	return 1 << (63 - uint(i&63))
}

// Bit returns the bit at index i.
func (s *BitString) Bit(i int) (bool, error) {
	if err := checkIndex(i, s.length); err != nil {
		return false, err
	}
	return s.words[i>>6]&mask(i) != 0, nil
}

// SetBit sets the bit at index i to one. Pure bit-value writes do not bump
// the generation counter.
func (s *BitString) SetBit(i int) error {
	if err := checkIndex(i, s.length); err != nil {
		return err
	}
	s.words[i>>6] |= mask(i)
	return nil
}

// ClearBit sets the bit at index i to zero.
func (s *BitString) ClearBit(i int) error {
	if err := checkIndex(i, s.length); err != nil {
		return err
	}
	s.words[i>>6] &^= mask(i)
	return nil
}

// FlipBit inverts the bit at index i.
func (s *BitString) FlipBit(i int) error {
	if err := checkIndex(i, s.length); err != nil {
		return err
	}
	s.words[i>>6] ^= mask(i)
	return nil
}

// PutBit sets the bit at index i to v.
func (s *BitString) PutBit(i int, v bool) error {
	if v {
		return s.SetBit(i)
	}
	return s.ClearBit(i)
}

// Count returns the number of set bits in [off, off+n).
func (s *BitString) Count(off, n int) (int, error) {
	sp, err := s.span(off, n, false)
	if err != nil {
		return 0, err
	}
	return bitalg.Count(sp), nil
}

// NextSet returns the index of the first set bit at or after from.
func (s *BitString) NextSet(from int) (int, bool, error) {
	return nextBit(s, from, true)
}

// NextClear returns the index of the first clear bit at or after from.
func (s *BitString) NextClear(from int) (int, bool, error) {
	return nextBit(s, from, false)
}

// PrevSet returns the index of the last set bit at or before from.
func (s *BitString) PrevSet(from int) (int, bool, error) {
	return prevBit(s, from, true)
}

func nextBit(s String, from int, bit bool) (int, bool, error) {
	size := s.Len()
	if from < 0 || from > size {
		return 0, false, fmt.Errorf("%w: index %d, size %d", ErrOutOfBounds, from, size)
	}
	sp, err := s.span(from, size-from, false)
	if err != nil {
		return 0, false, err
	}
	idx := bitalg.FindFirst(sp, bit)
	if idx < 0 {
		return 0, false, nil
	}
	return from + idx, true, nil
}

func prevBit(s String, from int, bit bool) (int, bool, error) {
	if err := checkIndex(from, s.Len()); err != nil {
		return 0, false, err
	}
	sp, err := s.span(0, from+1, false)
	if err != nil {
		return 0, false, err
	}
	idx := bitalg.FindLast(sp, bit)
	if idx < 0 {
		return 0, false, nil
	}
	return idx, true, nil
}

// Any reports whether [off, off+n) contains a set bit.
func (s *BitString) Any(off, n int) (bool, error) {
	sp, err := s.span(off, n, false)
	if err != nil {
		return false, err
	}
	return bitalg.FindFirst(sp, true) >= 0, nil
}

// All reports whether every bit of [off, off+n) is set.
func (s *BitString) All(off, n int) (bool, error) {
	sp, err := s.span(off, n, false)
	if err != nil {
		return false, err
	}
	return bitalg.FindFirst(sp, false) < 0, nil
}

// None reports whether [off, off+n) contains no set bit.
func (s *BitString) None(off, n int) (bool, error) {
	any, err := s.Any(off, n)
	return !any, err
}

// Clone returns a deep copy with exact capacity.
func (s *BitString) Clone() *BitString {
	words := make([]uint64, (s.length+bitalg.WordBits-1)/bitalg.WordBits)
	copy(words, s.words)
	return &BitString{words: words, length: s.length}
}

// String renders the bits as a "0101..." string, index 0 first.
func (s *BitString) String() string {
	return render(s.fullSpan())
}

func render(sp bitalg.Span) string {
	var b strings.Builder
	b.Grow(sp.N)
	c := bitalg.NewCursor(sp, false)
	for {
		v, _, nb, ok := c.NextAligned()
		if !ok {
			return b.String()
		}
		for i := 0; i < nb; i++ {
			if v&(1<<uint(63-i)) != 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
}

// WriteTo writes the persisted representation: the bit length as a uint64
// followed by the raw words in array order, little-endian.
func (s *BitString) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, uint64(s.length)); err != nil {
		return 0, err
	}
	n := int64(8)
	for _, word := range s.Words() {
		if err := binary.Write(w, binary.LittleEndian, word); err != nil {
			return n, err
		}
		n += 8
	}
	return n, nil
}

// ReadFrom replaces the contents with a persisted representation. The word
// array is taken as-is: capacity exactly matches the persisted word count.
// Restoring is a structural mutation, so live views go stale.
func (s *BitString) ReadFrom(r io.Reader) (int64, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return 0, err
	}
	if length > maxBits {
		return 8, fmt.Errorf("%w: persisted length %d", ErrCapacity, length)
	}
	n := int64(8)
	words := make([]uint64, (int(length)+bitalg.WordBits-1)/bitalg.WordBits)
	for i := range words {
		if err := binary.Read(r, binary.LittleEndian, &words[i]); err != nil {
			return n, err
		}
		n += 8
	}
	s.words = words
	s.length = int(length)
	s.gen++
	return n, nil
}

// Slice returns a live view over [off, off+n). The view tracks structural
// edits made through it and goes stale when the base is mutated through any
// other path.
func (s *BitString) Slice(off, n int) (*Range, error) {
	if err := checkRange(off, n, s.length); err != nil {
		return nil, err
	}
	return &Range{base: s, first: off, length: n, expected: s.gen}, nil
}

// SliceField is Slice with the range packaged as a Field.
func (s *BitString) SliceField(f Field) (*Range, error) {
	return s.Slice(f.Offset(), f.Length())
}
