package simple

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAnyType is matched by every InvalidAnyTypeError.
var ErrInvalidAnyType = errors.New("invalid any type")

// InvalidAnyTypeError is returned when a Value does not carry the expected kind.
type InvalidAnyTypeError struct {
	Expected Kind
	Actual   Kind
}

func (e *InvalidAnyTypeError) Error() string {
	return fmt.Sprintf("invalid any type: expected %s, got %s", e.Expected, e.Actual)
}

func (e *InvalidAnyTypeError) Is(target error) bool {
	return target == ErrInvalidAnyType
}

// Value is a primitive value tagged with its Kind. The zero Value has kind None.
type Value struct {
	kind Kind
	v    any
}

func Void() Value                      { return Value{} }
func OfChar8(v byte) Value             { return Value{Char8, v} }
func OfBool(v bool) Value              { return Value{Bool, v} }
func OfInt8(v int8) Value              { return Value{Int8, v} }
func OfUInt8(v uint8) Value            { return Value{UInt8, v} }
func OfInt16(v int16) Value            { return Value{Int16, v} }
func OfUInt16(v uint16) Value          { return Value{UInt16, v} }
func OfInt32(v int32) Value            { return Value{Int32, v} }
func OfUInt32(v uint32) Value          { return Value{UInt32, v} }
func OfInt64(v int64) Value            { return Value{Int64, v} }
func OfUInt64(v uint64) Value          { return Value{UInt64, v} }
func OfFloat32(v float32) Value        { return Value{Float32, v} }
func OfFloat64(v float64) Value        { return Value{Float64, v} }
func OfDuration(v time.Duration) Value { return Value{Duration, v} }
func OfDateTime(v time.Time) Value     { return Value{DateTime, v} }
func OfString8(v string) Value         { return Value{String8, v} }

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the underlying Go value, nil for None.
func (v Value) Raw() any { return v.v }

// Check fails with an InvalidAnyTypeError unless v carries kind.
func (v Value) Check(kind Kind) error {
	if v.kind != kind {
		return &InvalidAnyTypeError{Expected: kind, Actual: v.kind}
	}
	return nil
}

func (v Value) String() string {
	if v.kind == None {
		return "None"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.v)
}

// As extracts the underlying value as T. It fails when the value holds a
// different Go type.
func As[T any](v Value) (T, error) {
	t, ok := v.v.(T)
	if !ok {
		var zero T
		return zero, &InvalidAnyTypeError{Expected: KindOf[T](), Actual: v.kind}
	}
	return t, nil
}

// KindOf maps a Go type to its Kind. Types without a primitive mapping
// report None.
func KindOf[T any]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case uint8:
		return UInt8
	case int16:
		return Int16
	case uint16:
		return UInt16
	case int32:
		return Int32
	case uint32:
		return UInt32
	case int64:
		return Int64
	case uint64:
		return UInt64
	case float32:
		return Float32
	case float64:
		return Float64
	case time.Duration:
		return Duration
	case time.Time:
		return DateTime
	case string:
		return String8
	default:
		return None
	}
}
