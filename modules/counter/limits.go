package counter

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/codec"
)

// LimitsTypeUUID identifies the Limits type in the type registry.
var LimitsTypeUUID = uuid.MustParse("6f1c9a52-0d7e-4b8e-9a43-5e2b7c1d8f04")

// Limits is the inclusive range a counter is allowed to hold. A zero value
// disables the check.
type Limits struct {
	Min int64 `cty:"min" yaml:"min"`
	Max int64 `cty:"max" yaml:"max"`
}

// Enabled reports whether the range is checked.
func (l Limits) Enabled() bool { return l.Min < l.Max }

// Contains reports whether v lies within the range.
func (l Limits) Contains(v int64) bool {
	return !l.Enabled() || (v >= l.Min && v <= l.Max)
}

// LimitsRule stores both bounds as 64-bit integers.
var LimitsRule = codec.Convert(
	codec.PairOf(codec.Int64, codec.Int64),
	func(l Limits) codec.Pair[int64, int64] { return codec.Pair[int64, int64]{First: l.Min, Second: l.Max} },
	func(p codec.Pair[int64, int64]) Limits { return Limits{Min: p.First, Max: p.Second} },
)
