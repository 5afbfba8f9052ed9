package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType defines the compression algorithm applied to the word
// payload of a snapshot.
type CompressionType uint8

const (
	// CompressionNone stores the words raw. Required for OpenMapped.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compressPayload compresses the raw word bytes. It returns the stored
// bytes and the compression type actually used: an incompressible payload
// falls back to CompressionNone so the reader never pays for a failed
// compression.
func compressPayload(raw []byte, ct CompressionType) ([]byte, CompressionType, error) {
	if ct == CompressionNone || len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var compressed []byte
	switch ct {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			return raw, CompressionNone, nil
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(raw, nil)
		putZstdEncoder(enc)
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, ct)
	}

	if len(compressed) >= len(raw) {
		return raw, CompressionNone, nil
	}
	return compressed, ct, nil
}

// decompressPayload undoes compressPayload. rawSize is the exact
// uncompressed byte count recorded in the header.
func decompressPayload(stored []byte, ct CompressionType, rawSize int) ([]byte, error) {
	switch ct {
	case CompressionNone:
		if len(stored) != rawSize {
			return nil, fmt.Errorf("%w: raw payload is %d bytes, want %d", ErrCorruptSnapshot, len(stored), rawSize)
		}
		return stored, nil
	case CompressionLZ4:
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(stored, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: lz4 payload expands to %d bytes, want %d", ErrCorruptSnapshot, n, rawSize)
		}
		return raw, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		raw, err := dec.DecodeAll(stored, make([]byte, 0, rawSize))
		putZstdDecoder(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		if len(raw) != rawSize {
			return nil, fmt.Errorf("%w: zstd payload expands to %d bytes, want %d", ErrCorruptSnapshot, len(raw), rawSize)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, ct)
	}
}
