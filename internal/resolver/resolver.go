// Package resolver turns path strings into live nodes of the runtime graph
// and nodes back into their canonical absolute path.
package resolver

import (
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/path"
)

// Resolver walks the graph below a root node.
type Resolver struct {
	root   object.Object
	onMiss func(raw string)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMissHook registers a function called with every path that fails to
// resolve.
func WithMissHook(fn func(raw string)) Option {
	return func(r *Resolver) {
		r.onMiss = fn
	}
}

// New creates a resolver for the graph rooted at root.
func New(root object.Object, opts ...Option) *Resolver {
	r := &Resolver{root: root}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the node "/" resolves to.
func (r *Resolver) Root() object.Object { return r.root }

// ResolveAbsolute returns the node at raw, which must start with "/", or nil.
func (r *Resolver) ResolveAbsolute(raw string) object.Object {
	if !strings.HasPrefix(raw, "/") {
		return r.miss(raw)
	}
	return r.resolve(raw, r.root)
}

// ResolveRelative returns the node at raw relative to sender, or nil. A
// relative path never starts with "/".
func (r *Resolver) ResolveRelative(raw string, sender object.Object) object.Object {
	if raw == "" || strings.HasPrefix(raw, "/") || sender == nil {
		return r.miss(raw)
	}
	return r.resolve(raw, sender)
}

func (r *Resolver) resolve(raw string, start object.Object) object.Object {
	p, err := path.Parse(raw)
	if err != nil {
		return r.miss(raw)
	}
	cur := start
	for _, segment := range p.Segments {
		if cur = step(cur, segment); cur == nil {
			return r.miss(raw)
		}
	}
	return cur
}

func (r *Resolver) miss(raw string) object.Object {
	if r.onMiss != nil {
		r.onMiss(raw)
	}
	return nil
}

func step(cur object.Object, segment path.Segment) object.Object {
	switch segment.Kind {
	case path.Self:
		return cur
	case path.Parent:
		return cur.Parent()
	case path.Index:
		return byIndex(cur, segment.Index)
	default:
		return byName(cur, segment.Name)
	}
}

// children is implemented by Container and Reference.
type children interface {
	Get(name string) component.Component
	At(index int) component.Component
	IndexOf(name string) int
}

func byIndex(cur object.Object, index int) object.Object {
	switch node := cur.(type) {
	case children:
		return node.At(index)
	case component.IndexedField:
		return node.Item(index)
	}
	return nil
}

// byName matches name against the elements of cur: the children of a
// container or reference, then containers, references, the components held
// by its references, fields, entry points, event sinks, event sources and
// failures. A referenced component shadows a field of the same name.
func byName(cur object.Object, name string) object.Object {
	if node, ok := cur.(children); ok {
		return node.Get(name)
	}
	if node, ok := cur.(component.Composite); ok {
		if c := node.Container(name); c != nil {
			return c
		}
	}
	if node, ok := cur.(component.Aggregate); ok {
		if ref := node.Reference(name); ref != nil {
			return ref
		}
		for _, ref := range node.References() {
			if target := ref.Get(name); target != nil {
				return target
			}
		}
	}
	if node, ok := cur.(component.FieldHolder); ok {
		if f := node.Field(name); f != nil {
			return f
		}
	}
	if node, ok := cur.(component.EntryPointPublisher); ok {
		if ep := node.EntryPoint(name); ep != nil {
			return ep
		}
	}
	if node, ok := cur.(component.EventConsumer); ok {
		if sink := node.EventSink(name); sink != nil {
			return sink
		}
	}
	if node, ok := cur.(component.EventProvider); ok {
		if source := node.EventSource(name); source != nil {
			return source
		}
	}
	if node, ok := cur.(component.Fallible); ok {
		if failure := node.Failure(name); failure != nil {
			return failure
		}
	}
	return nil
}

// PathOf returns the canonical absolute path of obj, or "" when obj is nil
// or not below the root. A child whose name is a bracketed index is written
// as its position in its container.
func (r *Resolver) PathOf(obj object.Object) string {
	if obj == nil {
		return ""
	}
	var segments []string
	for cur := obj; cur != r.root; {
		parent := cur.Parent()
		if parent == nil {
			return ""
		}
		segments = append(segments, segmentOf(cur, parent))
		cur = parent
	}
	slices.Reverse(segments)
	return path.Join(segments...)
}

func segmentOf(node, parent object.Object) string {
	name := node.Name()
	if object.IsIndexName(name) {
		if c, ok := parent.(children); ok {
			if i := c.IndexOf(name); i >= 0 {
				return "[" + strconv.Itoa(i) + "]"
			}
		}
	}
	return name
}
