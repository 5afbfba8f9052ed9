package bitstring

import "fmt"

// Field names a contiguous bit range, offset plus length, independent of
// any particular string. Operations that take an explicit (off, n) pair
// usually have a Field-accepting convenience sibling; a Field is validated
// against the target string when it is applied, not when it is built.
type Field struct {
	off    int
	length int
}

// NewField builds a field from an offset and a length.
func NewField(off, n int) Field {
	return Field{off: off, length: n}
}

// FieldFromTo builds a field from an inclusive start and exclusive end.
func FieldFromTo(from, to int) Field {
	return Field{off: from, length: to - from}
}

// Offset returns the index of the first bit in the field.
func (f Field) Offset() int { return f.off }

// Length returns the number of bits in the field.
func (f Field) Length() int { return f.length }

// To returns the exclusive end index.
func (f Field) To() int { return f.off + f.length }

// Shifted returns the field moved by delta positions.
func (f Field) Shifted(delta int) Field {
	return Field{off: f.off + delta, length: f.length}
}

// Check validates the field against a string's current length.
func (f Field) Check(s String) error {
	return checkRange(f.off, f.length, s.Len())
}

func (f Field) String() string {
	return fmt.Sprintf("[%d,%d)", f.off, f.off+f.length)
}
