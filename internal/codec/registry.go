package codec

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry maps Go types to their rules.
type Registry struct {
	mu    sync.RWMutex
	rules map[reflect.Type]any
}

// NewRegistry creates a registry holding the built-in primitive rules.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[reflect.Type]any)}
	Register(r, Bool)
	Register(r, Int8)
	Register(r, Uint8)
	Register(r, Int16)
	Register(r, Uint16)
	Register(r, Int32)
	Register(r, Uint32)
	Register(r, Int64)
	Register(r, Uint64)
	Register(r, Float32)
	Register(r, Float64)
	Register(r, Int)
	Register(r, Uint)
	Register(r, Duration)
	Register(r, Time)
	Register(r, String)
	Register(r, Bytes)
	return r
}

// Register sets the rule of T, replacing any earlier one.
func Register[T any](r *Registry, rule Rule[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[reflect.TypeFor[T]()] = rule
}

// Lookup returns the rule registered for T.
func Lookup[T any](r *Registry) (Rule[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[reflect.TypeFor[T]()].(Rule[T])
	return rule, ok
}

// Store writes v with the rule registered for its type.
func Store[T any](r *Registry, e *Encoder, v T) error {
	rule, ok := Lookup[T](r)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, reflect.TypeFor[T]())
	}
	return rule.Store(e, v)
}

// Restore reads v with the rule registered for its type.
func Restore[T any](r *Registry, d *Decoder, v *T) error {
	rule, ok := Lookup[T](r)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, reflect.TypeFor[T]())
	}
	return rule.Restore(d, v)
}

