package bitstring

import (
	"fmt"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// Op is a binary word combinator. It receives a destination word and the
// aligned source word and returns the new destination word; the engine
// masks range margins, so an Op never needs to.
type Op func(dst, src uint64) uint64

// The fourteen named combinators. Each is a one-line specialization of the
// composition engine; Set and Clear ignore the source entirely.
var (
	OpAnd     Op = func(a, b uint64) uint64 { return a & b }
	OpOr      Op = func(a, b uint64) uint64 { return a | b }
	OpXor     Op = func(a, b uint64) uint64 { return a ^ b }
	OpNand    Op = func(a, b uint64) uint64 { return ^(a & b) }
	OpNor     Op = func(a, b uint64) uint64 { return ^(a | b) }
	OpXnor    Op = func(a, b uint64) uint64 { return ^(a ^ b) }
	OpAndNot  Op = func(a, b uint64) uint64 { return a &^ b }
	OpOrNot   Op = func(a, b uint64) uint64 { return a | ^b }
	OpNandNot Op = func(a, b uint64) uint64 { return ^(a &^ b) }
	OpNorNot  Op = func(a, b uint64) uint64 { return ^(a | ^b) }
	OpCopy    Op = func(_, b uint64) uint64 { return b }
	OpCopyNot Op = func(_, b uint64) uint64 { return ^b }
	OpSet     Op = func(_, _ uint64) uint64 { return ^uint64(0) }
	OpClear   Op = func(_, _ uint64) uint64 { return 0 }
)

// applyOp rewrites n bits of dst at dstOff as op(dstBit, srcBit). When both
// operands resolve to the same word storage and the regions overlap with
// the source below the destination, the source is snapshotted first so the
// ascending destination walk cannot consume already-rewritten words.
func applyOp(dst String, op Op, dstOff int, src String, srcOff, n int) error {
	if op == nil {
		return fmt.Errorf("%w: nil combinator", ErrInvalidArgument)
	}
	d, err := dst.span(dstOff, n, true)
	if err != nil {
		return err
	}
	s, err := src.span(srcOff, n, false)
	if err != nil {
		return err
	}
	if o := src.owner(); o != nil && o == dst.owner() && s.Off < d.Off && d.Off < s.Off+n {
		s = snapshot(s)
	}
	bitalg.Combine(d, s, bitalg.WordOp(op))
	return nil
}

func equalRange(a String, aOff int, b String, bOff, n int) (bool, error) {
	as, err := a.span(aOff, n, false)
	if err != nil {
		return false, err
	}
	bs, err := b.span(bOff, n, false)
	if err != nil {
		return false, err
	}
	return bitalg.Equal(as, bs), nil
}

func intersectsRange(a String, aOff int, b String, bOff, n int) (bool, error) {
	as, err := a.span(aOff, n, false)
	if err != nil {
		return false, err
	}
	bs, err := b.span(bOff, n, false)
	if err != nil {
		return false, err
	}
	return bitalg.Intersects(as, bs), nil
}

// Apply rewrites [off, off+n) as op(thisBit, thatBit), reading that from
// thatOff. The operands may belong to different strings, be arbitrarily
// misaligned, or overlap within one string.
func (s *BitString) Apply(op Op, off int, that String, thatOff, n int) error {
	return applyOp(s, op, off, that, thatOff, n)
}

// And combines [off, off+n) with that using AND.
func (s *BitString) And(off int, that String, thatOff, n int) error {
	return applyOp(s, OpAnd, off, that, thatOff, n)
}

// Or combines [off, off+n) with that using OR.
func (s *BitString) Or(off int, that String, thatOff, n int) error {
	return applyOp(s, OpOr, off, that, thatOff, n)
}

// Xor combines [off, off+n) with that using XOR.
func (s *BitString) Xor(off int, that String, thatOff, n int) error {
	return applyOp(s, OpXor, off, that, thatOff, n)
}

// AndNot clears in [off, off+n) every bit set in that.
func (s *BitString) AndNot(off int, that String, thatOff, n int) error {
	return applyOp(s, OpAndNot, off, that, thatOff, n)
}

// Copy overwrites [off, off+n) with bits read from that.
func (s *BitString) Copy(off int, that String, thatOff, n int) error {
	return applyOp(s, OpCopy, off, that, thatOff, n)
}

// SetRange sets every bit of [off, off+n).
func (s *BitString) SetRange(off, n int) error {
	return applyOp(s, OpSet, off, Zeros, 0, n)
}

// ClearRange clears every bit of [off, off+n).
func (s *BitString) ClearRange(off, n int) error {
	return applyOp(s, OpClear, off, Zeros, 0, n)
}

// FlipRange inverts every bit of [off, off+n).
func (s *BitString) FlipRange(off, n int) error {
	return applyOp(s, OpXor, off, Ones, 0, n)
}

// EqualRange reports whether [off, off+n) matches that bit for bit.
func (s *BitString) EqualRange(off int, that String, thatOff, n int) (bool, error) {
	return equalRange(s, off, that, thatOff, n)
}

// IntersectsRange reports whether [off, off+n) and that share a set bit.
func (s *BitString) IntersectsRange(off int, that String, thatOff, n int) (bool, error) {
	return intersectsRange(s, off, that, thatOff, n)
}

// Equal reports whether both strings have the same length and content.
func (s *BitString) Equal(that String) (bool, error) {
	if s.length != that.Len() {
		return false, nil
	}
	return equalRange(s, 0, that, 0, s.length)
}

// Apply rewrites [off, off+n) of the view as op(thisBit, thatBit).
func (r *Range) Apply(op Op, off int, that String, thatOff, n int) error {
	return applyOp(r, op, off, that, thatOff, n)
}

// And combines [off, off+n) of the view with that using AND.
func (r *Range) And(off int, that String, thatOff, n int) error {
	return applyOp(r, OpAnd, off, that, thatOff, n)
}

// Or combines [off, off+n) of the view with that using OR.
func (r *Range) Or(off int, that String, thatOff, n int) error {
	return applyOp(r, OpOr, off, that, thatOff, n)
}

// Xor combines [off, off+n) of the view with that using XOR.
func (r *Range) Xor(off int, that String, thatOff, n int) error {
	return applyOp(r, OpXor, off, that, thatOff, n)
}

// AndNot clears in [off, off+n) of the view every bit set in that.
func (r *Range) AndNot(off int, that String, thatOff, n int) error {
	return applyOp(r, OpAndNot, off, that, thatOff, n)
}

// Copy overwrites [off, off+n) of the view with bits read from that.
func (r *Range) Copy(off int, that String, thatOff, n int) error {
	return applyOp(r, OpCopy, off, that, thatOff, n)
}

// SetRange sets every bit of [off, off+n) of the view.
func (r *Range) SetRange(off, n int) error {
	return applyOp(r, OpSet, off, Zeros, 0, n)
}

// ClearRange clears every bit of [off, off+n) of the view.
func (r *Range) ClearRange(off, n int) error {
	return applyOp(r, OpClear, off, Zeros, 0, n)
}

// FlipRange inverts every bit of [off, off+n) of the view.
func (r *Range) FlipRange(off, n int) error {
	return applyOp(r, OpXor, off, Ones, 0, n)
}

// EqualRange reports whether [off, off+n) of the view matches that.
func (r *Range) EqualRange(off int, that String, thatOff, n int) (bool, error) {
	return equalRange(r, off, that, thatOff, n)
}

// IntersectsRange reports whether [off, off+n) of the view and that share a
// set bit.
func (r *Range) IntersectsRange(off int, that String, thatOff, n int) (bool, error) {
	return intersectsRange(r, off, that, thatOff, n)
}

// Equal reports whether the view and that have the same length and content.
func (r *Range) Equal(that String) (bool, error) {
	if err := r.check(); err != nil {
		return false, err
	}
	if r.length != that.Len() {
		return false, nil
	}
	return equalRange(r, 0, that, 0, r.length)
}
