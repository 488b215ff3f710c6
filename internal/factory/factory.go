// Package factory holds the factories that create components and the
// registry indexing them by name and by UUID.
package factory

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/object"
)

// CreateFunc builds a component of the factory's type.
type CreateFunc func(name, description string, parent object.Object) (component.Component, error)

// DestroyFunc releases a component created by the same factory.
type DestroyFunc func(component.Component)

// Factory creates and destroys components of one concrete type.
type Factory struct {
	uuid        uuid.UUID
	name        string
	description string
	typeName    string
	create      CreateFunc
	destroy     DestroyFunc
}

// New builds a factory. The name must follow the node name grammar; destroy
// may be nil.
func New(id uuid.UUID, name, description, typeName string, create CreateFunc, destroy DestroyFunc) (*Factory, error) {
	if err := object.ValidateName(name); err != nil {
		return nil, fmt.Errorf("factory for %s: %w", typeName, err)
	}
	if create == nil {
		return nil, fmt.Errorf("factory %q has no create function", name)
	}
	return &Factory{
		uuid:        id,
		name:        name,
		description: description,
		typeName:    typeName,
		create:      create,
		destroy:     destroy,
	}, nil
}

// For builds a factory for the component type T, taking the type name from T.
// An optional destroy releases the components it created.
func For[T component.Component](id uuid.UUID, name, description string, create func(name, description string, parent object.Object) (T, error), destroy ...func(T)) (*Factory, error) {
	var release DestroyFunc
	if len(destroy) > 0 && destroy[0] != nil {
		fn := destroy[0]
		release = func(c component.Component) {
			if typed, ok := c.(T); ok {
				fn(typed)
			}
		}
	}
	return New(id, name, description, reflect.TypeFor[T]().String(),
		func(n, d string, parent object.Object) (component.Component, error) {
			c, err := create(n, d, parent)
			if err != nil {
				return nil, err
			}
			return c, nil
		}, release)
}

func (f *Factory) Uuid() uuid.UUID     { return f.uuid }
func (f *Factory) Name() string        { return f.name }
func (f *Factory) Description() string { return f.description }
func (f *Factory) TypeName() string    { return f.typeName }

// CreateInstance builds a new component. The caller adds it to a container.
func (f *Factory) CreateInstance(name, description string, parent object.Object) (component.Component, error) {
	c, err := f.create(name, description, parent)
	if err != nil {
		return nil, fmt.Errorf("factory %q: creating %q: %w", f.name, name, err)
	}
	return c, nil
}

// DeleteInstance releases a component created by this factory.
func (f *Factory) DeleteInstance(c component.Component) {
	if f.destroy != nil && c != nil {
		f.destroy(c)
	}
}
