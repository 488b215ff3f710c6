package factory

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"
)

// ErrDuplicateUuid is matched by every DuplicateUuidError.
var ErrDuplicateUuid = errors.New("duplicate uuid")

// DuplicateUuidError names the factory already registered under a UUID and
// the one that was rejected.
type DuplicateUuidError struct {
	Uuid     uuid.UUID
	Existing string
	Rejected string
}

func (e *DuplicateUuidError) Error() string {
	return fmt.Sprintf("cannot add factory %q: uuid %s is already used by factory %q", e.Rejected, e.Uuid, e.Existing)
}

func (e *DuplicateUuidError) Is(target error) bool {
	return target == ErrDuplicateUuid
}

// Registry owns factories and indexes them by name, UUID and position.
//
// Names are not unique: ByName returns one of the factories sharing a name.
type Registry struct {
	factories []*Factory
	byUUID    map[uuid.UUID]*Factory
	byName    map[string]*Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byUUID: make(map[uuid.UUID]*Factory),
		byName: make(map[string]*Factory),
	}
}

// Add takes ownership of f. It fails with a DuplicateUuidError, leaving the
// registry unchanged, when another factory has the same UUID.
func (r *Registry) Add(f *Factory) error {
	if existing, ok := r.byUUID[f.uuid]; ok {
		return &DuplicateUuidError{Uuid: f.uuid, Existing: existing.name, Rejected: f.name}
	}
	r.factories = append(r.factories, f)
	r.byUUID[f.uuid] = f
	if _, ok := r.byName[f.name]; !ok {
		r.byName[f.name] = f
	}
	return nil
}

// ByName returns a factory with the given name, or nil.
func (r *Registry) ByName(name string) *Factory { return r.byName[name] }

// ByUUID returns the factory with the given UUID, or nil.
func (r *Registry) ByUUID(id uuid.UUID) *Factory { return r.byUUID[id] }

// At returns the factory at a zero-based insertion position, or nil.
func (r *Registry) At(index int) *Factory {
	if index < 0 || index >= len(r.factories) {
		return nil
	}
	return r.factories[index]
}

// Len returns the number of factories.
func (r *Registry) Len() int { return len(r.factories) }

// All iterates over the factories in insertion order.
func (r *Registry) All() iter.Seq[*Factory] {
	return func(yield func(*Factory) bool) {
		for _, f := range r.factories {
			if !yield(f) {
				return
			}
		}
	}
}

// Lookup finds a factory by UUID string or, failing that, by name.
func (r *Registry) Lookup(ref string) *Factory {
	if id, err := uuid.Parse(ref); err == nil {
		if f := r.ByUUID(id); f != nil {
			return f
		}
	}
	return r.ByName(ref)
}
