package component

import (
	"github.com/specialistvlad/simcore/internal/collection"
	"github.com/specialistvlad/simcore/internal/object"
)

// The capability interfaces below are what the resolver and the checkpoint
// walk look for on a node. The matching facets implement them.

type Composite interface {
	object.Object
	Containers() []*Container
	Container(name string) *Container
}

type Aggregate interface {
	object.Object
	References() []*Reference
	Reference(name string) *Reference
}

type EventConsumer interface {
	object.Object
	EventSinks() []*EventSink
	EventSink(name string) *EventSink
}

type EventProvider interface {
	object.Object
	EventSources() []*EventSource
	EventSource(name string) *EventSource
}

type EntryPointPublisher interface {
	object.Object
	EntryPoints() []*EntryPoint
	EntryPoint(name string) *EntryPoint
}

type Fallible interface {
	object.Object
	Failures() []*Failure
	Failure(name string) *Failure
	IsFailed() bool
}

type FieldHolder interface {
	object.Object
	Fields() []Field
	Field(name string) Field
}

// facet is the lazily created collection shared by every facet type.
type facet[T object.Object] struct {
	items *collection.Collection[T]
}

func (f *facet[T]) coll(label string) *collection.Collection[T] {
	if f.items == nil {
		f.items = collection.New[T](label)
	}
	return f.items
}

// add appends item unless its owner already has an element of that name in
// any facet, so a name always resolves to one element.
func (f *facet[T]) add(label string, item T) error {
	if owner := item.Parent(); owner != nil && hasElement(owner, item.Name()) {
		return &collection.DuplicateNameError{Collection: label, Name: item.Name()}
	}
	return f.coll(label).Add(item)
}

func hasElement(owner object.Object, name string) bool {
	if node, ok := owner.(Composite); ok && node.Container(name) != nil {
		return true
	}
	if node, ok := owner.(Aggregate); ok && node.Reference(name) != nil {
		return true
	}
	if node, ok := owner.(FieldHolder); ok && node.Field(name) != nil {
		return true
	}
	if node, ok := owner.(EntryPointPublisher); ok && node.EntryPoint(name) != nil {
		return true
	}
	if node, ok := owner.(EventConsumer); ok && node.EventSink(name) != nil {
		return true
	}
	if node, ok := owner.(EventProvider); ok && node.EventSource(name) != nil {
		return true
	}
	if node, ok := owner.(Fallible); ok && node.Failure(name) != nil {
		return true
	}
	return false
}

func (f *facet[T]) all() []T {
	if f.items == nil {
		return nil
	}
	return f.items.Items()
}

func (f *facet[T]) get(name string) T {
	var zero T
	if f.items == nil {
		return zero
	}
	item, _ := f.items.Get(name)
	return item
}

// CompositeFacet holds the child containers of a component.
type CompositeFacet struct{ f facet[*Container] }

func (c *CompositeFacet) Containers() []*Container           { return c.f.all() }
func (c *CompositeFacet) Container(name string) *Container   { return c.f.get(name) }
func (c *CompositeFacet) AddContainer(item *Container) error { return c.f.add("containers", item) }

// AggregateFacet holds the references of a component.
type AggregateFacet struct{ f facet[*Reference] }

func (a *AggregateFacet) References() []*Reference           { return a.f.all() }
func (a *AggregateFacet) Reference(name string) *Reference   { return a.f.get(name) }
func (a *AggregateFacet) AddReference(item *Reference) error { return a.f.add("references", item) }

// ConsumerFacet holds the event sinks of a component.
type ConsumerFacet struct{ f facet[*EventSink] }

func (c *ConsumerFacet) EventSinks() []*EventSink           { return c.f.all() }
func (c *ConsumerFacet) EventSink(name string) *EventSink   { return c.f.get(name) }
func (c *ConsumerFacet) AddEventSink(item *EventSink) error { return c.f.add("event sinks", item) }

// ProviderFacet holds the event sources of a component.
type ProviderFacet struct{ f facet[*EventSource] }

func (p *ProviderFacet) EventSources() []*EventSource           { return p.f.all() }
func (p *ProviderFacet) EventSource(name string) *EventSource   { return p.f.get(name) }
func (p *ProviderFacet) AddEventSource(item *EventSource) error { return p.f.add("event sources", item) }

// PublisherFacet holds the entry points of a component.
type PublisherFacet struct{ f facet[*EntryPoint] }

func (p *PublisherFacet) EntryPoints() []*EntryPoint           { return p.f.all() }
func (p *PublisherFacet) EntryPoint(name string) *EntryPoint   { return p.f.get(name) }
func (p *PublisherFacet) AddEntryPoint(item *EntryPoint) error { return p.f.add("entry points", item) }

// FallibleFacet holds the failures of a component.
type FallibleFacet struct{ f facet[*Failure] }

func (ff *FallibleFacet) Failures() []*Failure           { return ff.f.all() }
func (ff *FallibleFacet) Failure(name string) *Failure   { return ff.f.get(name) }
func (ff *FallibleFacet) AddFailure(item *Failure) error { return ff.f.add("failures", item) }

// IsFailed reports whether any failure is raised.
func (ff *FallibleFacet) IsFailed() bool {
	for _, failure := range ff.f.all() {
		if failure.IsFailed() {
			return true
		}
	}
	return false
}

// FieldFacet holds the published fields of a component.
type FieldFacet struct{ f facet[Field] }

func (ff *FieldFacet) Fields() []Field           { return ff.f.all() }
func (ff *FieldFacet) Field(name string) Field   { return ff.f.get(name) }
func (ff *FieldFacet) AddField(item Field) error { return ff.f.add("fields", item) }
