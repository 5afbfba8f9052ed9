package bitstring

import "github.com/hupe1980/bitstring/internal/bitalg"

// Constant is an immutable, conceptually infinite run of a single bit
// value. It serves wherever a read-only source operand is accepted: masking
// with Zeros clears, merging with Ones saturates, and any window of any
// length can be read from it. Constant has no mutator methods, so writes
// are rejected at compile time; when one reaches a write path dynamically,
// through the concatenated shift entry points, it reports ErrImmutable.
type Constant struct {
	word uint64
}

// Zeros is the all-zero constant.
var Zeros = &Constant{word: 0}

// Ones is the all-one constant.
var Ones = &Constant{word: ^uint64(0)}

// Len returns the addressable extent of the constant, which is the largest
// representable length. Every in-range window reads the same bit value.
func (c *Constant) Len() int { return maxBits }

// Bit returns the constant's bit value for any valid index.
func (c *Constant) Bit(i int) (bool, error) {
	if err := checkIndex(i, maxBits); err != nil {
		return false, err
	}
	return c.word != 0, nil
}

func (c *Constant) owner() *BitString { return nil }

func (c *Constant) span(off, n int, write bool) (bitalg.Span, error) {
	if write {
		return bitalg.Span{}, ErrImmutable
	}
	if err := checkRange(off, n, maxBits); err != nil {
		return bitalg.Span{}, err
	}
	return bitalg.Span{CW: c.word, Off: 0, N: n}, nil
}

// String identifies the constant without enumerating its bits.
func (c *Constant) String() string {
	if c.word != 0 {
		return "Ones"
	}
	return "Zeros"
}
