//go:build unix

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/bitstring"
)

// OpenMapped maps an uncompressed snapshot into memory and wraps the
// mapped words directly, without copying. The mapping is private, so
// mutating the returned BitString never touches the file; structural
// growth reallocates into the heap as usual. The returned closer unmaps
// the file and must not be called while the BitString still aliases the
// original mapping.
func OpenMapped(filename string) (*bitstring.BitString, func() error, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := st.Size()
	if size < headerSize+4 {
		return nil, nil, fmt.Errorf("%w: file is %d bytes", ErrCorruptSnapshot, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	closer := func() error { return unix.Munmap(data) }

	var header FileHeader
	if err := binary.Read(bytes.NewReader(data[:headerSize]), binary.LittleEndian, &header); err != nil {
		_ = closer()
		return nil, nil, err
	}
	if err := header.validate(); err != nil {
		_ = closer()
		return nil, nil, err
	}
	if CompressionType(header.Compression) != CompressionNone {
		_ = closer()
		return nil, nil, fmt.Errorf("%w: mapped open requires an uncompressed snapshot", ErrUnknownCompression)
	}
	if int64(headerSize)+int64(header.PayloadSize)+4 != size {
		_ = closer()
		return nil, nil, fmt.Errorf("%w: file is %d bytes, header describes %d", ErrCorruptSnapshot, size, headerSize+header.PayloadSize+4)
	}

	stored := binary.LittleEndian.Uint32(data[size-4:])
	if actual := crc32.Checksum(data[:size-4], crc32Table); actual != stored {
		_ = closer()
		return nil, nil, &ChecksumMismatchError{Expected: stored, Actual: actual}
	}

	var words []uint64
	if header.WordCount > 0 {
		// The header is 40 bytes and the mapping is page aligned, so the
		// payload is 8-byte aligned.
		words = unsafe.Slice((*uint64)(unsafe.Pointer(&data[headerSize])), header.WordCount)
	}
	s, err := bitstring.FromWords(words, int(header.Length))
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return s, closer, nil
}
