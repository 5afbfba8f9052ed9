// Package bitstring implements a mutable, resizable bit vector packed into
// 64-bit words, with bit-exact operations over arbitrary, possibly
// word-unaligned sub-ranges.
//
// The core type is BitString. On top of single-bit access it offers:
//
//   - bitwise composition of two sub-ranges, which may live in different
//     strings at different bit alignments, under any of fourteen named
//     combinators (Apply, And, Or, Xor, ...)
//   - shifting and rotation of a sub-range, including two-buffer variants
//     that treat two strings as one logical sequence (ShiftConcat,
//     RotateConcat)
//   - in-place bit-order reversal
//   - structural editing: Append, Insert, Delete, Replace, SetLen
//   - conversion to and from fixed-width primitive slices and roaring
//     bitmaps
//
// A Range is a live, zero-copy view over a sub-range of a BitString.
// Structural edits performed through a Range are forwarded to the base and
// keep the view current; edits performed through any other path invalidate
// the view permanently, detected by a generation counter (ErrStale).
//
// Zeros and Ones are immutable, effectively infinite constants usable as
// the source operand of any operation: x.Apply(OpCopy, off, Ones, 0, n)
// sets a range, x.And(off, Zeros, 0, n) clears one.
//
// BitString is not safe for concurrent use; the generation counter detects
// single-threaded aliasing conflicts, not data races.
//
// Snapshot persistence with compression, checksums, and atomic file
// replacement lives in the codec subpackage; WriteTo/ReadFrom on BitString
// provide the raw "length then words" form.
package bitstring
