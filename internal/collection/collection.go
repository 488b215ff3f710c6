// Package collection provides the ordered, name-unique set of child handles
// that every capability facet holds.
//
// A collection never owns or removes its elements. Insertion order is
// preserved and observable through At and All.
package collection

import (
	"errors"
	"fmt"
	"iter"

	"github.com/specialistvlad/simcore/internal/object"
)

// ErrDuplicateName is matched by every DuplicateNameError.
var ErrDuplicateName = errors.New("duplicate name")

// DuplicateNameError is returned by Add when the name is already taken.
type DuplicateNameError struct {
	Collection string
	Name       string
}

func (e *DuplicateNameError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("duplicate name %q in collection", e.Name)
	}
	return fmt.Sprintf("duplicate name %q in collection %q", e.Name, e.Collection)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// Collection is an ordered sequence of T with a name index.
type Collection[T object.Object] struct {
	label  string
	items  []T
	byName map[string]int
}

// New creates an empty collection. The label is only used in error messages.
func New[T object.Object](label string) *Collection[T] {
	return &Collection[T]{label: label, byName: make(map[string]int)}
}

// Add appends item. It fails without modifying the collection if an item with
// the same name is already present.
func (c *Collection[T]) Add(item T) error {
	name := item.Name()
	if _, exists := c.byName[name]; exists {
		return &DuplicateNameError{Collection: c.label, Name: name}
	}
	c.byName[name] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// Get returns the item with the given name.
func (c *Collection[T]) Get(name string) (T, bool) {
	i, ok := c.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// At returns the item at a zero-based position.
func (c *Collection[T]) At(index int) (T, bool) {
	if index < 0 || index >= len(c.items) {
		var zero T
		return zero, false
	}
	return c.items[index], true
}

// IndexOf returns the position of the named item, or -1.
func (c *Collection[T]) IndexOf(name string) int {
	if i, ok := c.byName[name]; ok {
		return i
	}
	return -1
}

func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns a copy of the items in insertion order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// All iterates over the items in insertion order.
func (c *Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}
