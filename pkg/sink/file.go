package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects the encoding applied to an output file.
type Compression int

const (
	CompressNone Compression = iota
	CompressGzip
	CompressZstd
)

// CompressionFor picks the encoding from the file name extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressGzip
	case ".zst", ".zstd":
		return CompressZstd
	}
	return CompressNone
}

type chainCloser struct {
	io.Writer
	closers []io.Closer
}

// Close closes the encoder first, then the file.
func (c *chainCloser) Close() error {
	var firstErr error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Create truncates or creates path and returns a writer that compresses
// according to the file extension. Closing the writer finishes the stream and
// closes the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: failed to create %s: %w", path, err)
	}
	w, err := Wrap(f, CompressionFor(path))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sink: %s: %w", path, err)
	}
	return w, nil
}

// Wrap layers the requested compression over w. The returned closer also
// closes w.
func Wrap(w io.WriteCloser, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressGzip:
		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			return nil, fmt.Errorf("gzip: failed to initialize writer: %w", err)
		}
		return &chainCloser{Writer: gz, closers: []io.Closer{gz, w}}, nil
	case CompressZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("zstd: failed to initialize encoder: %w", err)
		}
		return &chainCloser{Writer: enc, closers: []io.Closer{enc, w}}, nil
	}
	return w, nil
}
