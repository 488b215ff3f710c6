package codec

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/simcore/internal/object"
)

// Graph converts live nodes to absolute paths and back.
type Graph interface {
	PathOf(obj object.Object) string
	ResolveAbsolute(path string) object.Object
}

// Ref returns the rule of a reference into the live graph. The reference is
// stored as the absolute path of the node, or as an empty string when nil.
//
// On restore a path that no longer resolves, or resolves to a node of
// another type, yields the zero value of T and is reported by
// Decoder.Unresolved. Without a graph both directions fail.
func Ref[T object.Object](g Graph) Rule[T] {
	return Func(
		func(e *Encoder, v T) error {
			if g == nil {
				return fmt.Errorf("%w: no graph attached", ErrCannotStore)
			}
			p := ""
			if !isNil(v) {
				p = g.PathOf(v)
			}
			return String.Store(e, p)
		},
		func(d *Decoder, v *T) error {
			if g == nil {
				return fmt.Errorf("%w: no graph attached", ErrCannotRestore)
			}
			var p string
			if err := String.Restore(d, &p); err != nil {
				return err
			}
			var zero T
			*v = zero
			if p == "" {
				return nil
			}
			if target, ok := g.ResolveAbsolute(p).(T); ok && !isNil(target) {
				*v = target
				return nil
			}
			d.unresolved = append(d.unresolved, p)
			return nil
		},
	)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
