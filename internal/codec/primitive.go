package codec

import (
	"encoding/binary"
	"time"
)

type fixedSize interface {
	~bool | ~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

type fixed[T fixedSize] struct{}

func (fixed[T]) Store(e *Encoder, v T) error {
	buf, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		return err
	}
	return e.Write(buf)
}

func (fixed[T]) Restore(d *Decoder, v *T) error {
	buf := make([]byte, binary.Size(v))
	if err := d.Read(buf); err != nil {
		return err
	}
	_, err := binary.Decode(buf, binary.LittleEndian, v)
	return err
}

// Fixed returns the raw little-endian rule of a fixed-size numeric type,
// including named types built on one.
func Fixed[T fixedSize]() Rule[T] { return fixed[T]{} }

var (
	Bool    Rule[bool]    = fixed[bool]{}
	Int8    Rule[int8]    = fixed[int8]{}
	Uint8   Rule[uint8]   = fixed[uint8]{}
	Int16   Rule[int16]   = fixed[int16]{}
	Uint16  Rule[uint16]  = fixed[uint16]{}
	Int32   Rule[int32]   = fixed[int32]{}
	Uint32  Rule[uint32]  = fixed[uint32]{}
	Int64   Rule[int64]   = fixed[int64]{}
	Uint64  Rule[uint64]  = fixed[uint64]{}
	Float32 Rule[float32] = fixed[float32]{}
	Float64 Rule[float64] = fixed[float64]{}

	// Int and Uint are stored as 64 bits regardless of the platform.
	Int  = Convert(Int64, func(v int) int64 { return int64(v) }, func(v int64) int { return int(v) })
	Uint = Convert(Uint64, func(v uint) uint64 { return uint64(v) }, func(v uint64) uint { return uint(v) })

	Duration = Convert(Int64,
		func(v time.Duration) int64 { return int64(v) },
		func(v int64) time.Duration { return time.Duration(v) })

	// Time keeps nanosecond precision in UTC. The monotonic reading and
	// location are not stored.
	Time = Convert(Int64,
		func(v time.Time) int64 { return v.UnixNano() },
		func(v int64) time.Time { return time.Unix(0, v).UTC() })

	String Rule[string] = stringRule{}
	Bytes  Rule[[]byte] = bytesRule{}
)

func storeCount(e *Encoder, n int) error {
	return Uint64.Store(e, uint64(n))
}

func restoreCount(d *Decoder) (uint64, error) {
	var n uint64
	err := Uint64.Restore(d, &n)
	return n, err
}

type stringRule struct{}

func (stringRule) Store(e *Encoder, v string) error {
	if err := storeCount(e, len(v)); err != nil {
		return err
	}
	return e.Write([]byte(v))
}

func (stringRule) Restore(d *Decoder, v *string) error {
	var b []byte
	if err := Bytes.Restore(d, &b); err != nil {
		return err
	}
	*v = string(b)
	return nil
}

type bytesRule struct{}

func (bytesRule) Store(e *Encoder, v []byte) error {
	if err := storeCount(e, len(v)); err != nil {
		return err
	}
	return e.Write(v)
}

func (bytesRule) Restore(d *Decoder, v *[]byte) error {
	n, err := restoreCount(d)
	if err != nil {
		return err
	}
	if n > maxPrealloc {
		// Read in chunks so a corrupt count cannot force a huge allocation.
		out := make([]byte, 0, maxPrealloc)
		chunk := make([]byte, maxPrealloc)
		for remaining := n; remaining > 0; {
			size := min(remaining, uint64(len(chunk)))
			if err := d.Read(chunk[:size]); err != nil {
				return err
			}
			out = append(out, chunk[:size]...)
			remaining -= size
		}
		*v = out
		return nil
	}
	buf := make([]byte, n)
	if err := d.Read(buf); err != nil {
		return err
	}
	*v = buf
	return nil
}

const maxPrealloc = 1 << 16
