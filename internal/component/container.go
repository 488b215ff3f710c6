package component

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/specialistvlad/simcore/internal/collection"
	"github.com/specialistvlad/simcore/internal/object"
)

// Unbounded is the Upper bound of a container or reference without a limit.
const Unbounded = -1

type bounds struct {
	lower, upper int
	accept       func(Component) bool
	typeName     string
}

// Option configures a Container or a Reference.
type Option func(*bounds)

// WithBounds sets the minimum and maximum number of elements. Use Unbounded
// for no maximum.
func WithBounds(lower, upper int) Option {
	return func(b *bounds) {
		b.lower, b.upper = lower, upper
	}
}

// OfType restricts the elements to components implementing T.
func OfType[T Component]() Option {
	return func(b *bounds) {
		b.accept = func(c Component) bool {
			_, ok := c.(T)
			return ok
		}
		b.typeName = reflect.TypeFor[T]().String()
	}
}

func newBounds(opts []Option) bounds {
	b := bounds{upper: Unbounded}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *bounds) check(owner object.Object, c Component, count int, full error) error {
	if b.upper != Unbounded && count >= b.upper {
		return fmt.Errorf("%w: %q holds at most %d", full, owner.Name(), b.upper)
	}
	if b.accept != nil && !b.accept(c) {
		return fmt.Errorf("%w: %q accepts %s, got %T", ErrInvalidObjectType, owner.Name(), b.typeName, c)
	}
	return nil
}

// Container owns child components. Its parent is the composite declaring it,
// and it is the parent of its children.
type Container struct {
	*object.Base
	bounds
	items *collection.Collection[Component]
}

// NewContainer builds an empty container.
func NewContainer(name, description string, parent object.Object, opts ...Option) (*Container, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &Container{Base: b, bounds: newBounds(opts), items: collection.New[Component](name)}, nil
}

// Add appends a component. It fails with ErrContainerFull past the upper
// bound, ErrInvalidObjectType for a rejected type and ErrDuplicateName when
// the name is taken.
func (c *Container) Add(child Component) error {
	if err := c.check(c, child, c.items.Len(), ErrContainerFull); err != nil {
		return err
	}
	return c.items.Add(child)
}

func (c *Container) Get(name string) Component {
	child, _ := c.items.Get(name)
	return child
}

func (c *Container) At(index int) Component {
	child, _ := c.items.At(index)
	return child
}

func (c *Container) IndexOf(name string) int        { return c.items.IndexOf(name) }
func (c *Container) Len() int                       { return c.items.Len() }
func (c *Container) Items() []Component             { return c.items.Items() }
func (c *Container) All() iter.Seq2[int, Component] { return c.items.All() }
func (c *Container) Lower() int                     { return c.lower }
func (c *Container) Upper() int                     { return c.upper }

// Reference holds links to components owned elsewhere.
type Reference struct {
	*object.Base
	bounds
	items *collection.Collection[Component]
}

// NewReference builds an empty reference.
func NewReference(name, description string, parent object.Object, opts ...Option) (*Reference, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &Reference{Base: b, bounds: newBounds(opts), items: collection.New[Component](name)}, nil
}

// Add links a component. It fails with ErrReferenceFull past the upper
// bound, ErrInvalidObjectType for a rejected type and ErrDuplicateName when
// a component with the same name is already linked.
func (r *Reference) Add(target Component) error {
	if err := r.check(r, target, r.items.Len(), ErrReferenceFull); err != nil {
		return err
	}
	return r.items.Add(target)
}

func (r *Reference) Get(name string) Component {
	target, _ := r.items.Get(name)
	return target
}

func (r *Reference) At(index int) Component {
	target, _ := r.items.At(index)
	return target
}

func (r *Reference) IndexOf(name string) int        { return r.items.IndexOf(name) }
func (r *Reference) Len() int                       { return r.items.Len() }
func (r *Reference) Items() []Component             { return r.items.Items() }
func (r *Reference) All() iter.Seq2[int, Component] { return r.items.All() }
func (r *Reference) Lower() int                     { return r.lower }
func (r *Reference) Upper() int                     { return r.upper }
