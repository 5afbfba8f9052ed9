package codec

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

const (
	// MagicNumber identifies bitstring snapshot files (ASCII: "BST0")
	MagicNumber = 0x42535430
	// Version is the current snapshot format version (v1.0.0)
	Version = 0x00010000

	headerSize = 40
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression type")
	ErrCorruptSnapshot    = errors.New("corrupt snapshot")
)

// FileHeader is the 40-byte header at the start of every snapshot file.
// The size is a multiple of 8 so the word payload of an uncompressed
// snapshot stays 8-byte aligned for mmap access.
type FileHeader struct {
	Magic       uint32 // 0x42535430 ("BST0")
	Version     uint32 // Snapshot format version
	Compression uint8  // 0=None, 1=LZ4, 2=ZSTD
	Padding1    [3]byte
	Length      uint64 // Number of valid bits
	WordCount   uint64 // Number of 64-bit payload words
	PayloadSize uint64 // Payload bytes as stored (after compression)
	Padding2    [4]byte
}

func (h *FileHeader) validate() error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	if CompressionType(h.Compression) > CompressionZSTD {
		return fmt.Errorf("%w: %d", ErrUnknownCompression, h.Compression)
	}
	if h.WordCount != (h.Length+63)/64 {
		return fmt.Errorf("%w: %d words cannot hold %d bits", ErrCorruptSnapshot, h.WordCount, h.Length)
	}
	// Compression falls back to stored when it would not shrink the
	// payload, so the stored size never exceeds the raw word bytes and
	// matches them exactly when uncompressed.
	raw := h.WordCount * 8
	if h.PayloadSize > raw ||
		(CompressionType(h.Compression) == CompressionNone && h.PayloadSize != raw) {
		return fmt.Errorf("%w: payload of %d bytes for %d words", ErrCorruptSnapshot, h.PayloadSize, h.WordCount)
	}
	return nil
}

// crc32Table is the IEEE polynomial table used for snapshot checksums.
// CRC32 detects accidental corruption only; it is not tamper-proof.
var crc32Table = crc32.MakeTable(crc32.IEEE)

// checksumWriter wraps an io.Writer and computes a running CRC32 checksum.
type checksumWriter struct {
	w    io.Writer
	hash hash.Hash32
}

func newChecksumWriter(w io.Writer) *checksumWriter {
	return &checksumWriter{w: w, hash: crc32.New(crc32Table)}
}

func (cw *checksumWriter) Write(p []byte) (int, error) {
	if _, err := cw.hash.Write(p); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

func (cw *checksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}

// checksumReader wraps an io.Reader and computes a running CRC32 checksum.
type checksumReader struct {
	r    io.Reader
	hash hash.Hash32
}

func newChecksumReader(r io.Reader) *checksumReader {
	return &checksumReader{r: r, hash: crc32.New(crc32Table)}
}

func (cr *checksumReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		if _, hashErr := cr.hash.Write(p[:n]); hashErr != nil {
			return n, hashErr
		}
	}
	return n, err
}

func (cr *checksumReader) Sum() uint32 {
	return cr.hash.Sum32()
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
