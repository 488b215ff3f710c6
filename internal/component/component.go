package component

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/object"
)

// Component is a node of the runtime graph created by a factory.
type Component interface {
	object.Object
	// Uuid identifies the concrete type, which is the UUID of its factory.
	Uuid() uuid.UUID
}

// Persistent is implemented by components and elements that carry state
// beyond their fields.
type Persistent interface {
	Store(e *codec.Encoder) error
	Restore(d *codec.Decoder) error
}

// Base is the identity of a component.
type Base struct {
	*object.Base
	uuid uuid.UUID
}

// NewBase validates name and builds the identity of a component of type id.
func NewBase(name, description string, parent object.Object, id uuid.UUID) (*Base, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &Base{Base: b, uuid: id}, nil
}

func (b *Base) Uuid() uuid.UUID { return b.uuid }
