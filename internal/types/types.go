// Package types is the registry of value types known to the runtime. Plugins
// register the types they define during Initialise; each type carries the
// codec rule used to checkpoint it.
package types

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/simple"
)

var (
	ErrTypeAlreadyRegistered = errors.New("type already registered")
	ErrTypeNotRegistered     = errors.New("type not registered")
)

// Namespace derives the UUIDs of the built-in primitive types.
var Namespace = uuid.MustParse("0d5b1a8e-6c7f-4b59-a3c2-91e4f0d7b6a2")

// Type describes one registered value type.
type Type struct {
	Uuid        uuid.UUID
	Name        string
	Description string
	GoType      reflect.Type
	// Kind is the primitive kind the type maps to, simple.None otherwise.
	Kind simple.Kind
}

func (t *Type) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Uuid)
}

// Registry indexes types by UUID and by Go type.
type Registry struct {
	types  []*Type
	byUUID map[uuid.UUID]*Type
	byGo   map[reflect.Type]*Type
	codecs *codec.Registry
}

// NewRegistry creates a registry holding the primitive types.
func NewRegistry() *Registry {
	r := &Registry{
		byUUID: make(map[uuid.UUID]*Type),
		byGo:   make(map[reflect.Type]*Type),
		codecs: codec.NewRegistry(),
	}
	mustPrimitive(r, "Bool", codec.Bool)
	mustPrimitive(r, "Int8", codec.Int8)
	mustPrimitive(r, "UInt8", codec.Uint8)
	mustPrimitive(r, "Int16", codec.Int16)
	mustPrimitive(r, "UInt16", codec.Uint16)
	mustPrimitive(r, "Int32", codec.Int32)
	mustPrimitive(r, "UInt32", codec.Uint32)
	mustPrimitive(r, "Int64", codec.Int64)
	mustPrimitive(r, "UInt64", codec.Uint64)
	mustPrimitive(r, "Float32", codec.Float32)
	mustPrimitive(r, "Float64", codec.Float64)
	mustPrimitive(r, "Duration", codec.Duration)
	mustPrimitive(r, "DateTime", codec.Time)
	mustPrimitive(r, "String8", codec.String)
	return r
}

// PrimitiveUUID returns the UUID of a built-in primitive type by name.
func PrimitiveUUID(name string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(name))
}

func mustPrimitive[T any](r *Registry, name string, rule codec.Rule[T]) {
	if _, err := Register(r, PrimitiveUUID(name), name, "primitive "+name, rule); err != nil {
		panic(err)
	}
}

// Register adds the type T under id and makes rule its codec rule. It fails
// with ErrTypeAlreadyRegistered when id or T is already known.
func Register[T any](r *Registry, id uuid.UUID, name, description string, rule codec.Rule[T]) (*Type, error) {
	goType := reflect.TypeFor[T]()
	if existing, ok := r.byUUID[id]; ok {
		return nil, fmt.Errorf("%w: uuid %s is used by %q", ErrTypeAlreadyRegistered, id, existing.Name)
	}
	if existing, ok := r.byGo[goType]; ok {
		return nil, fmt.Errorf("%w: Go type %s is registered as %q", ErrTypeAlreadyRegistered, goType, existing.Name)
	}

	t := &Type{
		Uuid:        id,
		Name:        name,
		Description: description,
		GoType:      goType,
		Kind:        simple.KindOf[T](),
	}
	r.types = append(r.types, t)
	r.byUUID[id] = t
	r.byGo[goType] = t
	if rule != nil {
		codec.Register(r.codecs, rule)
	}
	return t, nil
}

// ByUUID returns the type registered under id, or nil.
func (r *Registry) ByUUID(id uuid.UUID) *Type { return r.byUUID[id] }

// ByGoType returns the type registered for t, or nil.
func (r *Registry) ByGoType(t reflect.Type) *Type { return r.byGo[t] }

// Of returns the type registered for T, or nil.
func Of[T any](r *Registry) *Type { return r.byGo[reflect.TypeFor[T]()] }

// Require is ByUUID reporting a miss as ErrTypeNotRegistered.
func (r *Registry) Require(id uuid.UUID) (*Type, error) {
	if t := r.byUUID[id]; t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotRegistered, id)
}

func (r *Registry) Len() int { return len(r.types) }

// All iterates over the types in registration order.
func (r *Registry) All() iter.Seq[*Type] {
	return func(yield func(*Type) bool) {
		for _, t := range r.types {
			if !yield(t) {
				return
			}
		}
	}
}

// Codecs returns the codec rules of the registered types.
func (r *Registry) Codecs() *codec.Registry { return r.codecs }

