package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

var (
	// ErrCannotStore is returned when a checkpoint cannot be created or written.
	ErrCannotStore = errors.New("cannot store")
	// ErrCannotRestore is returned when a checkpoint cannot be opened or is
	// shorter than what is being read.
	ErrCannotRestore = errors.New("cannot restore")
)

// Compression selects how the bytes are laid out on disk.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
)

// ParseCompression accepts "", "none" and "zstd".
func ParseCompression(s string) (Compression, error) {
	switch Compression(s) {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionZstd:
		return CompressionZstd, nil
	default:
		return "", fmt.Errorf("unknown compression %q, expected one of: none, zstd", s)
	}
}

// Options configure a file channel. Reader and writer must agree on them.
type Options struct {
	Compression Compression
}

// Writer appends raw bytes to a checkpoint file.
type Writer struct {
	path string
	file *os.File
	buf  *bufio.Writer
	zenc *zstd.Encoder
	out  io.Writer
}

// NewWriter creates dir if needed and creates or truncates dir/file.
func NewWriter(dir, file string, opts Options) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating directory %q: %w", ErrCannotStore, dir, err)
	}
	p := filepath.Join(dir, file)
	f, err := os.Create(p)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrCannotStore, p, err)
	}

	w := &Writer{path: p, file: f, buf: bufio.NewWriter(f)}
	w.out = w.buf
	if opts.Compression == CompressionZstd {
		enc, err := zstd.NewWriter(w.buf)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %w", ErrCannotStore, err)
		}
		w.zenc = enc
		w.out = enc
	}
	return w, nil
}

// Path returns the location of the checkpoint file.
func (w *Writer) Path() string { return w.path }

// Store appends p to the file.
func (w *Writer) Store(p []byte) error {
	if _, err := w.out.Write(p); err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrCannotStore, w.path, err)
	}
	return nil
}

// Close flushes all pending bytes and closes the file.
func (w *Writer) Close() error {
	var errs []error
	if w.zenc != nil {
		errs = append(errs, w.zenc.Close())
	}
	errs = append(errs, w.buf.Flush(), w.file.Close())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrCannotStore, w.path, err)
	}
	return nil
}

// Reader reads raw bytes from a checkpoint file.
type Reader struct {
	path string
	file *os.File
	zdec *zstd.Decoder
	in   io.Reader
}

// NewReader opens dir/file. It fails immediately if the file is missing or
// unreadable.
func NewReader(dir, file string, opts Options) (*Reader, error) {
	p := filepath.Join(dir, file)
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrCannotRestore, p, err)
	}

	r := &Reader{path: p, file: f, in: bufio.NewReader(f)}
	if opts.Compression == CompressionZstd {
		dec, err := zstd.NewReader(r.in)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %w", ErrCannotRestore, err)
		}
		r.zdec = dec
		r.in = dec
	}
	return r, nil
}

// Path returns the location of the checkpoint file.
func (r *Reader) Path() string { return r.path }

// Restore fills p from the file.
func (r *Reader) Restore(p []byte) error {
	if _, err := io.ReadFull(r.in, p); err != nil {
		return fmt.Errorf("%w: reading %d bytes from %q: %w", ErrCannotRestore, len(p), r.path, err)
	}
	return nil
}

// Close releases the file.
func (r *Reader) Close() error {
	if r.zdec != nil {
		r.zdec.Close()
	}
	return r.file.Close()
}
