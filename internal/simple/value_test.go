package simple

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Kinds(t *testing.T) {
	now := time.Unix(1700000000, 0)
	testCases := []struct {
		name     string
		value    Value
		expected Kind
		raw      any
	}{
		{"void", Void(), None, nil},
		{"char8", OfChar8('x'), Char8, byte('x')},
		{"bool", OfBool(true), Bool, true},
		{"int32", OfInt32(-3), Int32, int32(-3)},
		{"uint64", OfUInt64(7), UInt64, uint64(7)},
		{"float64", OfFloat64(1.5), Float64, 1.5},
		{"duration", OfDuration(time.Second), Duration, time.Second},
		{"datetime", OfDateTime(now), DateTime, now},
		{"string8", OfString8("hi"), String8, "hi"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.Kind())
			assert.Equal(t, tc.raw, tc.value.Raw())
			assert.NoError(t, tc.value.Check(tc.expected))
		})
	}
}

func TestValue_CheckMismatch(t *testing.T) {
	err := OfInt32(1).Check(Float64)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAnyType)

	var typeErr *InvalidAnyTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, Float64, typeErr.Expected)
	assert.Equal(t, Int32, typeErr.Actual)
	assert.Equal(t, "invalid any type: expected Float64, got Int32", err.Error())
}

func TestAs(t *testing.T) {
	got, err := As[int32](OfInt32(9))
	require.NoError(t, err)
	assert.Equal(t, int32(9), got)

	_, err = As[string](OfInt32(9))
	assert.ErrorIs(t, err, ErrInvalidAnyType)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Int64, KindOf[int64]())
	assert.Equal(t, String8, KindOf[string]())
	assert.Equal(t, None, KindOf[struct{}]())
	assert.Equal(t, "Unknown", Kind(99).String())
}
