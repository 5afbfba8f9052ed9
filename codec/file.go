package codec

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bitstring"
)

const fileBufferSize = 256 * 1024

// SaveToFile writes a snapshot atomically: the encoding goes to a temp
// file in the target directory, which is fsynced and renamed over the
// destination.
func SaveToFile(filename string, s *bitstring.BitString, optFns ...Option) error {
	opts := applyOptions(optFns)
	start := time.Now()

	err := writeFileAtomic(filename, func(w io.Writer) error {
		return Write(w, s, optFns...)
	})
	if err != nil {
		return err
	}

	opts.Logger.Debug("snapshot saved",
		"file", filename,
		"bits", s.Len(),
		"compression", opts.Compression.String(),
		"took", time.Since(start),
	)
	return nil
}

func writeFileAtomic(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	// Write to a temp file in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, fileBufferSize)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent the deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile reads a snapshot written by SaveToFile.
func LoadFromFile(filename string, optFns ...Option) (*bitstring.BitString, error) {
	opts := applyOptions(optFns)
	start := time.Now()

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(bufio.NewReaderSize(f, fileBufferSize))
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("snapshot loaded",
		"file", filename,
		"bits", s.Len(),
		"took", time.Since(start),
	)
	return s, nil
}

// SaveAll writes a set of snapshots concurrently, bounded by the
// parallelism option. The first failure cancels the remaining saves;
// already-written files are left in place.
func SaveAll(ctx context.Context, snapshots map[string]*bitstring.BitString, optFns ...Option) error {
	opts := applyOptions(optFns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for filename, s := range snapshots {
		filename, s := filename, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return SaveToFile(filename, s, optFns...)
		})
	}
	return g.Wait()
}

// LoadAll reads a set of snapshots concurrently, keyed by filename.
func LoadAll(ctx context.Context, filenames []string, optFns ...Option) (map[string]*bitstring.BitString, error) {
	opts := applyOptions(optFns)

	var mu sync.Mutex
	out := make(map[string]*bitstring.BitString, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for _, filename := range filenames {
		filename := filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := LoadFromFile(filename, optFns...)
			if err != nil {
				return err
			}
			mu.Lock()
			out[filename] = s
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
