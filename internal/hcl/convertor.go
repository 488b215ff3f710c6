package hcl

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeValue converts val to the type target points to. Durations and
// timestamps are also accepted as strings ("1m30s", RFC 3339).
func (c *Converter) DecodeValue(ctx context.Context, val cty.Value, target any) error {
	logger := ctxlog.FromContext(ctx)
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return fmt.Errorf("target for decoding must be a non-nil pointer, got %T", target)
	}
	if val.IsNull() {
		return fmt.Errorf("cannot decode a null value into %s", ptr.Elem().Type())
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("cannot decode an unknown value into %s", ptr.Elem().Type())
	}

	switch t := target.(type) {
	case *time.Duration:
		if val.Type() == cty.String {
			d, err := time.ParseDuration(val.AsString())
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			*t = d
			return nil
		}
	case *time.Time:
		if val.Type() != cty.String {
			return fmt.Errorf("cannot convert %s to a timestamp, expected an RFC 3339 string", val.Type().FriendlyName())
		}
		ts, err := time.Parse(time.RFC3339Nano, val.AsString())
		if err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		*t = ts.UTC()
		return nil
	}

	impliedType, err := gocty.ImpliedType(ptr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", ptr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, target)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}
	return gocty.FromCtyValue(converted, target)
}
