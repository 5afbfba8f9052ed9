package bitstring

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when an offset or length falls outside the
	// addressable range of a string.
	ErrOutOfBounds = errors.New("bit index out of bounds")

	// ErrInvalidArgument is returned for malformed arguments that are not
	// bounds violations: nil combinators, negative lengths, bad conversions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacity is returned when an edit would push the total length past
	// the representable maximum.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrStale is returned by every accessor of a Range whose base has been
	// structurally mutated through another path. A stale Range never
	// recovers; derive a fresh view instead.
	ErrStale = errors.New("stale range view")

	// ErrImmutable is returned when a constant reaches a write path, e.g. as
	// the destination of a concatenated shift.
	ErrImmutable = errors.New("constant is immutable")
)

// checkRange validates [off, off+n) against a string of the given size.
// The comparison is arranged so off+n cannot overflow.
func checkRange(off, n, size int) error {
	if off < 0 || n < 0 || off > size || n > size-off {
		return fmt.Errorf("%w: offset %d, length %d, size %d", ErrOutOfBounds, off, n, size)
	}
	return nil
}

// checkIndex validates a single bit index.
func checkIndex(i, size int) error {
	if i < 0 || i >= size {
		return fmt.Errorf("%w: index %d, size %d", ErrOutOfBounds, i, size)
	}
	return nil
}
