package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrCannotRestore is returned when the stream is short or does not
	// match the expected layout.
	ErrCannotRestore = errors.New("cannot restore")
	// ErrCannotStore is returned when a value does not fit its rule.
	ErrCannotStore = errors.New("cannot store")
	// ErrUnsupportedType is returned when no rule is registered for a type.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Writer is the raw byte sink a checkpoint is written to.
type Writer interface {
	Store(p []byte) error
}

// Reader is the raw byte source a checkpoint is read from. Restore fills p
// completely or fails.
type Reader interface {
	Restore(p []byte) error
}

// Encoder writes values to a Writer.
type Encoder struct {
	w       Writer
	graph   Graph
	written int64
}

// NewEncoder creates an Encoder on top of w.
func NewEncoder(w Writer) *Encoder {
	return &Encoder{w: w}
}

// Write stores raw bytes.
func (e *Encoder) Write(p []byte) error {
	if err := e.w.Store(p); err != nil {
		return err
	}
	e.written += int64(len(p))
	return nil
}

// Written returns the number of bytes stored so far.
func (e *Encoder) Written() int64 { return e.written }

// WithGraph attaches the graph used by rules that store references.
func (e *Encoder) WithGraph(g Graph) *Encoder {
	e.graph = g
	return e
}

// Graph returns the attached graph, or nil.
func (e *Encoder) Graph() Graph { return e.graph }

// Decoder reads values from a Reader.
type Decoder struct {
	r          Reader
	graph      Graph
	read       int64
	unresolved []string
}

// NewDecoder creates a Decoder on top of r.
func NewDecoder(r Reader) *Decoder {
	return &Decoder{r: r}
}

// Read fills p from the stream.
func (d *Decoder) Read(p []byte) error {
	if err := d.r.Restore(p); err != nil {
		if errors.Is(err, ErrCannotRestore) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrCannotRestore, err)
	}
	d.read += int64(len(p))
	return nil
}

// ReadCount returns the number of bytes restored so far.
func (d *Decoder) ReadCount() int64 { return d.read }

// WithGraph attaches the graph used by rules that restore references.
func (d *Decoder) WithGraph(g Graph) *Decoder {
	d.graph = g
	return d
}

// Graph returns the attached graph, or nil.
func (d *Decoder) Graph() Graph { return d.graph }

// Unresolved lists the reference paths that did not resolve while
// restoring, in stream order.
func (d *Decoder) Unresolved() []string {
	out := make([]string, len(d.unresolved))
	copy(out, d.unresolved)
	return out
}
