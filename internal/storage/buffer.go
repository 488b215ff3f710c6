package storage

import "fmt"

// Buffer is an in-memory channel. Bytes stored are restored in the same
// order.
type Buffer struct {
	data []byte
	off  int
}

// NewBuffer creates a buffer that restores from data.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) Store(p []byte) error {
	b.data = append(b.data, p...)
	return nil
}

func (b *Buffer) Restore(p []byte) error {
	if len(b.data)-b.off < len(p) {
		return fmt.Errorf("%w: %d bytes requested, %d left", ErrCannotRestore, len(p), len(b.data)-b.off)
	}
	b.off += copy(p, b.data[b.off:])
	return nil
}

// Bytes returns everything stored so far.
func (b *Buffer) Bytes() []byte { return b.data }

// Rewind moves the read position back to the start.
func (b *Buffer) Rewind() { b.off = 0 }
