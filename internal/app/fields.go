package app

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// applyFields sets the fields of holder from configured values. Objects set
// structure fields and lists set array fields item by item.
func applyFields(ctx context.Context, conv config.Converter, holder component.FieldHolder, values map[string]cty.Value) error {
	for _, name := range slices.Sorted(maps.Keys(values)) {
		f := holder.Field(name)
		if f == nil {
			return fmt.Errorf("unknown field %q of %q", name, holder.Name())
		}
		if err := setField(ctx, conv, f, values[name]); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}
	return nil
}

func setField(ctx context.Context, conv config.Converter, f component.Field, val cty.Value) error {
	switch field := f.(type) {
	case component.ValueField:
		return conv.DecodeValue(ctx, val, field.Target())
	case component.IndexedField:
		ty := val.Type()
		if val.IsNull() || !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
			return fmt.Errorf("expected a list of %d values, got %s", field.Len(), ty.FriendlyName())
		}
		items := val.AsValueSlice()
		if len(items) != field.Len() {
			return fmt.Errorf("expected %d values, got %d", field.Len(), len(items))
		}
		for i, item := range items {
			if err := setField(ctx, conv, field.Item(i), item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	case component.FieldHolder:
		ty := val.Type()
		if val.IsNull() || !(ty.IsObjectType() || ty.IsMapType()) {
			return fmt.Errorf("expected an object, got %s", ty.FriendlyName())
		}
		return applyFields(ctx, conv, field, val.AsValueMap())
	default:
		return fmt.Errorf("field type %T cannot be configured", f)
	}
}
