package bitstring

import (
	"fmt"

	"github.com/hupe1980/bitstring/internal/bitalg"
)

// Range is a live, non-owning view over a contiguous sub-range of a base
// BitString. A Range stores the absolute offset into the base, so word
// access never chains through intermediate views; the parent pointer is
// kept solely so structural edits performed through the Range can refresh
// every view they logically pass through.
//
// Staleness is terminal. When the base is structurally mutated through any
// path other than this Range, every subsequent access fails with ErrStale
// and the Range never recovers; derive a fresh view instead.
type Range struct {
	base     *BitString
	parent   *Range
	first    int
	length   int
	expected uint64
}

func (r *Range) check() error {
	if r.expected != r.base.gen {
		return fmt.Errorf("%w: expected generation %d, base at %d", ErrStale, r.expected, r.base.gen)
	}
	return nil
}

// Stale reports whether the view has been invalidated by a foreign
// structural mutation of its base.
func (r *Range) Stale() bool { return r.expected != r.base.gen }

// Len returns the number of bits in the view. The value reflects the last
// state this Range observed; a stale Range keeps reporting it.
func (r *Range) Len() int { return r.length }

// Offset returns the view's absolute offset into the base.
func (r *Range) Offset() int { return r.first }

// Base returns the BitString that owns the words.
func (r *Range) Base() *BitString { return r.base }

func (r *Range) owner() *BitString { return r.base }

func (r *Range) span(off, n int, _ bool) (bitalg.Span, error) {
	if err := r.check(); err != nil {
		return bitalg.Span{}, err
	}
	if err := checkRange(off, n, r.length); err != nil {
		return bitalg.Span{}, err
	}
	return bitalg.Span{Words: r.base.words, Off: r.first + off, N: n}, nil
}

// Bit returns the bit at view index i.
func (r *Range) Bit(i int) (bool, error) {
	if err := r.check(); err != nil {
		return false, err
	}
	if err := checkIndex(i, r.length); err != nil {
		return false, err
	}
	return r.base.Bit(r.first + i)
}

// SetBit sets the bit at view index i to one.
func (r *Range) SetBit(i int) error { return r.putBit(i, true) }

// ClearBit sets the bit at view index i to zero.
func (r *Range) ClearBit(i int) error { return r.putBit(i, false) }

// PutBit sets the bit at view index i to v.
func (r *Range) PutBit(i int, v bool) error { return r.putBit(i, v) }

func (r *Range) putBit(i int, v bool) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := checkIndex(i, r.length); err != nil {
		return err
	}
	return r.base.PutBit(r.first+i, v)
}

// FlipBit inverts the bit at view index i.
func (r *Range) FlipBit(i int) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := checkIndex(i, r.length); err != nil {
		return err
	}
	return r.base.FlipBit(r.first + i)
}

// Count returns the number of set bits in [off, off+n) of the view.
func (r *Range) Count(off, n int) (int, error) {
	sp, err := r.span(off, n, false)
	if err != nil {
		return 0, err
	}
	return bitalg.Count(sp), nil
}

// NextSet returns the index of the first set bit at or after from.
func (r *Range) NextSet(from int) (int, bool, error) { return nextBit(r, from, true) }

// NextClear returns the index of the first clear bit at or after from.
func (r *Range) NextClear(from int) (int, bool, error) { return nextBit(r, from, false) }

// PrevSet returns the index of the last set bit at or before from.
func (r *Range) PrevSet(from int) (int, bool, error) { return prevBit(r, from, true) }

// Any reports whether [off, off+n) of the view contains a set bit.
func (r *Range) Any(off, n int) (bool, error) {
	sp, err := r.span(off, n, false)
	if err != nil {
		return false, err
	}
	return bitalg.FindFirst(sp, true) >= 0, nil
}

// All reports whether every bit of [off, off+n) of the view is set.
func (r *Range) All(off, n int) (bool, error) {
	sp, err := r.span(off, n, false)
	if err != nil {
		return false, err
	}
	return bitalg.FindFirst(sp, false) < 0, nil
}

// None reports whether [off, off+n) of the view contains no set bit.
func (r *Range) None(off, n int) (bool, error) {
	any, err := r.Any(off, n)
	return !any, err
}

// Slice returns a nested view over [off, off+n) of this view. Word access
// in the child goes straight to the base; the child's parent pointer keeps
// the edit-forwarding chain intact.
func (r *Range) Slice(off, n int) (*Range, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	if err := checkRange(off, n, r.length); err != nil {
		return nil, err
	}
	return &Range{
		base:     r.base,
		parent:   r,
		first:    r.first + off,
		length:   n,
		expected: r.base.gen,
	}, nil
}

// SliceField is Slice with the range packaged as a Field.
func (r *Range) SliceField(f Field) (*Range, error) {
	return r.Slice(f.Offset(), f.Length())
}

// String renders the view's bits index 0 first, or a stale marker.
func (r *Range) String() string {
	if r.Stale() {
		return "<stale range>"
	}
	return render(bitalg.Span{Words: r.base.words, Off: r.first, N: r.length})
}

// Snapshot copies the view's current content into a fresh BitString.
func (r *Range) Snapshot() (*BitString, error) {
	sp, err := r.span(0, r.length, false)
	if err != nil {
		return nil, err
	}
	out := New(r.length)
	bitalg.Combine(out.fullSpan(), sp, func(_, b uint64) uint64 { return b })
	return out, nil
}

// edit runs a structural mutation of the base through this view and then
// walks the forwarding chain, adjusting each view's cached length and
// refreshing its generation expectation. The walk is an explicit loop up
// the parent pointers; the base has already applied the real resize and
// bumped its generation exactly once.
func (r *Range) edit(delta int, apply func(*BitString) error) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := apply(r.base); err != nil {
		return err
	}
	for p := r; p != nil; p = p.parent {
		p.length += delta
		p.expected = r.base.gen
	}
	return nil
}

// Append extends the view at its far end and copies src into the new tail.
// The base grows at the view's absolute end position, so bits of the base
// after the view move toward higher indexes.
func (r *Range) Append(src String, srcOff, n int) error {
	return r.edit(n, func(b *BitString) error {
		return b.insertAt(r.first+r.length, src, srcOff, n)
	})
}

// Insert makes room at view index pos and copies src into the gap.
func (r *Range) Insert(pos int, src String, srcOff, n int) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := checkRange(pos, 0, r.length); err != nil {
		return err
	}
	return r.edit(n, func(b *BitString) error {
		return b.insertAt(r.first+pos, src, srcOff, n)
	})
}

// Delete removes [off, off+n) from the view, closing the gap.
func (r *Range) Delete(off, n int) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := checkRange(off, n, r.length); err != nil {
		return err
	}
	return r.edit(-n, func(b *BitString) error {
		return b.deleteAt(r.first+off, n)
	})
}

// Replace substitutes [off, off+n) of the view with srcN bits of src,
// resizing as needed.
func (r *Range) Replace(off, n int, src String, srcOff, srcN int) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := checkRange(off, n, r.length); err != nil {
		return err
	}
	return r.edit(srcN-n, func(b *BitString) error {
		return b.replaceAt(r.first+off, n, src, srcOff, srcN)
	})
}
