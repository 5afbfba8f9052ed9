//go:build !unix

package codec

import "github.com/hupe1980/bitstring"

// OpenMapped falls back to a regular buffered load on platforms without
// unix mmap support. The closer is a no-op.
func OpenMapped(filename string) (*bitstring.BitString, func() error, error) {
	s, err := LoadFromFile(filename)
	if err != nil {
		return nil, nil, err
	}
	return s, func() error { return nil }, nil
}
