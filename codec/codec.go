// Package codec persists BitString snapshots: a versioned binary header,
// the raw words (optionally LZ4- or zstd-compressed), and a trailing CRC32
// checksum. Saves go through a temp file and an atomic rename.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/hupe1980/bitstring"
)

// Options configures snapshot encoding and file handling.
type Options struct {
	// Compression selects the payload compression. Mapped opens require
	// CompressionNone.
	Compression CompressionType

	// Parallelism bounds the number of concurrent file operations in
	// SaveAll/LoadAll.
	Parallelism int

	// Logger receives save/load progress. Discarded by default.
	Logger *slog.Logger
}

// Option customizes Options.
type Option func(o *Options)

// WithCompression selects the payload compression.
func WithCompression(ct CompressionType) Option {
	return func(o *Options) {
		o.Compression = ct
	}
}

// WithParallelism bounds concurrent file operations in SaveAll/LoadAll.
func WithParallelism(n int) Option {
	return func(o *Options) {
		o.Parallelism = n
	}
}

// WithLogger routes save/load progress to the given logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// DefaultOptions returns uncompressed snapshots, bounded concurrency, and
// no logging.
func DefaultOptions() Options {
	return Options{
		Compression: CompressionNone,
		Parallelism: 8,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(optFns []Option) Options {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return opts
}

// wordBytes reinterprets a word slice as raw bytes without copying.
func wordBytes(words []uint64) []byte {
	if len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*8)
}

// Write encodes a snapshot of s to w: header, payload, trailing CRC32 over
// header and payload.
func Write(w io.Writer, s *bitstring.BitString, optFns ...Option) error {
	opts := applyOptions(optFns)

	words := s.Words()
	payload, ct, err := compressPayload(wordBytes(words), opts.Compression)
	if err != nil {
		return err
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(ct),
		Length:      uint64(s.Len()),
		WordCount:   uint64(len(words)),
		PayloadSize: uint64(len(payload)),
	}

	cw := newChecksumWriter(w)
	if err := binary.Write(cw, binary.LittleEndian, &header); err != nil {
		return err
	}
	if _, err := cw.Write(payload); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, cw.Sum())
}

// Read decodes a snapshot written by Write, verifying the header and the
// checksum.
func Read(r io.Reader) (*bitstring.BitString, error) {
	cr := newChecksumReader(r)

	var header FileHeader
	if err := binary.Read(cr, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if err := header.validate(); err != nil {
		return nil, err
	}

	payload := make([]byte, header.PayloadSize)
	if _, err := io.ReadFull(cr, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrCorruptSnapshot, err)
	}
	actual := cr.Sum()

	var stored uint32
	if err := binary.Read(r, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("%w: truncated checksum: %v", ErrCorruptSnapshot, err)
	}
	if stored != actual {
		return nil, &ChecksumMismatchError{Expected: stored, Actual: actual}
	}

	raw, err := decompressPayload(payload, CompressionType(header.Compression), int(header.WordCount)*8)
	if err != nil {
		return nil, err
	}

	words := make([]uint64, header.WordCount)
	copy(wordBytes(words), raw)
	return bitstring.FromWords(words, int(header.Length))
}
