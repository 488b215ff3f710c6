package component

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/collection"
	"github.com/specialistvlad/simcore/internal/object"
)

// Field is a published piece of component state. State fields are part of
// the component checkpoint.
type Field interface {
	object.Object
	Persistent
	IsState() bool
}

// ValueField is a field holding a single Go value.
type ValueField interface {
	Field
	// Value returns a copy of the current value.
	Value() any
	// Target returns a pointer to the value, for decoders that fill it in
	// place.
	Target() any
}

// IndexedField is a field whose items are addressed by position.
type IndexedField interface {
	Field
	Len() int
	Item(index int) Field
}

// SimpleField holds one value of type T.
type SimpleField[T any] struct {
	*object.Base
	rule  codec.Rule[T]
	state bool
	value T
}

// NewField builds a field holding the zero value of T.
func NewField[T any](name, description string, parent object.Object, rule codec.Rule[T], state bool) (*SimpleField[T], error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &SimpleField[T]{Base: b, rule: rule, state: state}, nil
}

func (f *SimpleField[T]) Get() T        { return f.value }
func (f *SimpleField[T]) Set(v T)       { f.value = v }
func (f *SimpleField[T]) Value() any    { return f.value }
func (f *SimpleField[T]) Target() any   { return &f.value }
func (f *SimpleField[T]) IsState() bool { return f.state }

func (f *SimpleField[T]) Store(e *codec.Encoder) error   { return f.rule.Store(e, f.value) }
func (f *SimpleField[T]) Restore(d *codec.Decoder) error { return f.rule.Restore(d, &f.value) }

// ArrayField holds a fixed number of items of type T, named "[0]", "[1]"...
type ArrayField[T any] struct {
	*object.Base
	state bool
	items []*SimpleField[T]
}

// NewArrayField builds an array field of n zero-valued items.
func NewArrayField[T any](name, description string, parent object.Object, n int, rule codec.Rule[T], state bool) (*ArrayField[T], error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("array field %q: negative size %d", name, n)
	}
	a := &ArrayField[T]{Base: b, state: state, items: make([]*SimpleField[T], n)}
	for i := range a.items {
		item, err := NewField("["+strconv.Itoa(i)+"]", "", a, rule, state)
		if err != nil {
			return nil, err
		}
		a.items[i] = item
	}
	return a, nil
}

func (a *ArrayField[T]) Len() int      { return len(a.items) }
func (a *ArrayField[T]) IsState() bool { return a.state }

// Item returns the item at index, or nil when out of range.
func (a *ArrayField[T]) Item(index int) Field {
	if index < 0 || index >= len(a.items) {
		return nil
	}
	return a.items[index]
}

// At returns the typed item at index, or nil when out of range.
func (a *ArrayField[T]) At(index int) *SimpleField[T] {
	if index < 0 || index >= len(a.items) {
		return nil
	}
	return a.items[index]
}

// Values returns the item values in order.
func (a *ArrayField[T]) Values() []T {
	out := make([]T, len(a.items))
	for i, item := range a.items {
		out[i] = item.value
	}
	return out
}

// SetValues assigns the leading items from values.
func (a *ArrayField[T]) SetValues(values []T) error {
	if len(values) > len(a.items) {
		return fmt.Errorf("array field %q holds %d items, got %d", a.Name(), len(a.items), len(values))
	}
	for i, v := range values {
		a.items[i].value = v
	}
	return nil
}

func (a *ArrayField[T]) Store(e *codec.Encoder) error {
	for _, item := range a.items {
		if err := item.Store(e); err != nil {
			return err
		}
	}
	return nil
}

func (a *ArrayField[T]) Restore(d *codec.Decoder) error {
	for _, item := range a.items {
		if err := item.Restore(d); err != nil {
			return err
		}
	}
	return nil
}

// StructureField groups named fields.
type StructureField struct {
	*object.Base
	state  bool
	fields *collection.Collection[Field]
}

// NewStructureField builds an empty structure. Its members are added with
// AddField and must have the structure as parent.
func NewStructureField(name, description string, parent object.Object, state bool) (*StructureField, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &StructureField{Base: b, state: state, fields: collection.New[Field](name)}, nil
}

func (s *StructureField) IsState() bool          { return s.state }
func (s *StructureField) AddField(f Field) error { return s.fields.Add(f) }
func (s *StructureField) Fields() []Field        { return s.fields.Items() }

// Field returns the named member, or nil.
func (s *StructureField) Field(name string) Field {
	f, _ := s.fields.Get(name)
	return f
}

func (s *StructureField) Store(e *codec.Encoder) error {
	for _, f := range s.fields.All() {
		if err := f.Store(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *StructureField) Restore(d *codec.Decoder) error {
	for _, f := range s.fields.All() {
		if err := f.Restore(d); err != nil {
			return err
		}
	}
	return nil
}
