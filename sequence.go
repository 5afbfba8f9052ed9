package bitstring

import "github.com/hupe1980/bitstring/internal/bitalg"

// String is the contract shared by the three bit string variants: BitString
// (owns its words), Range (a live view over a BitString), and Constant (an
// immutable infinite run of one bit value). Any of them can serve as the
// source operand of a bitwise, shift, or structural operation; only
// BitString and Range expose mutators.
//
// The interface is sealed: the unexported resolution method keeps outside
// implementations out, so the engine only ever sees the three variants.
type String interface {
	// Len returns the number of valid bits.
	Len() int

	// Bit returns the bit at index i.
	Bit(i int) (bool, error)

	// span validates [off, off+n) and resolves it to raw words for the
	// engine. write marks mutation intent; a Constant rejects it and a
	// Range additionally verifies its generation expectation.
	span(off, n int, write bool) (bitalg.Span, error)

	// owner returns the BitString that owns the underlying words, or nil
	// for a Constant. Structural edits use it to detect payload aliasing.
	owner() *BitString
}

// snapshot copies a resolved span into fresh word-aligned storage. Used to
// decouple a payload from a destination it aliases.
func snapshot(s bitalg.Span) bitalg.Span {
	c := bitalg.Span{Words: make([]uint64, (s.N+bitalg.WordBits-1)/bitalg.WordBits), N: s.N}
	bitalg.Combine(c, s, func(_, b uint64) uint64 { return b })
	return c
}

// resolvePayload resolves a source operand and snapshots it when it shares
// storage with dst, so structural relocation cannot corrupt the payload.
func resolvePayload(dst *BitString, src String, srcOff, n int) (bitalg.Span, error) {
	sp, err := src.span(srcOff, n, false)
	if err != nil {
		return bitalg.Span{}, err
	}
	if src.owner() == dst {
		sp = snapshot(sp)
	}
	return sp, nil
}
