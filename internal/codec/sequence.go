package codec

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Array returns the rule of a fixed-size sequence of n elements. No count is
// written: a value of another length cannot be stored.
func Array[T any](n int, elem Rule[T]) Rule[[]T] {
	return Func(
		func(e *Encoder, v []T) error {
			if len(v) != n {
				return fmt.Errorf("%w: array of %d elements holds %d", ErrCannotStore, n, len(v))
			}
			for _, item := range v {
				if err := elem.Store(e, item); err != nil {
					return err
				}
			}
			return nil
		},
		func(d *Decoder, v *[]T) error {
			if len(*v) != n {
				*v = make([]T, n)
			}
			for i := range *v {
				if err := elem.Restore(d, &(*v)[i]); err != nil {
					return err
				}
			}
			return nil
		},
	)
}

// Slice returns the rule of a growable sequence: a count followed by the
// elements in order. Restore replaces the destination.
func Slice[T any](elem Rule[T]) Rule[[]T] {
	return Func(
		func(e *Encoder, v []T) error {
			if err := storeCount(e, len(v)); err != nil {
				return err
			}
			for _, item := range v {
				if err := elem.Store(e, item); err != nil {
					return err
				}
			}
			return nil
		},
		func(d *Decoder, v *[]T) error {
			n, err := restoreCount(d)
			if err != nil {
				return err
			}
			out := make([]T, 0, min(n, maxPrealloc))
			for range n {
				var item T
				if err := elem.Restore(d, &item); err != nil {
					return err
				}
				out = append(out, item)
			}
			*v = out
			return nil
		},
	)
}

// Map returns the rule of a map with ordered keys. Pairs are stored in
// ascending key order so equal maps produce equal bytes.
func Map[K cmp.Ordered, V any](key Rule[K], value Rule[V]) Rule[map[K]V] {
	return MapWith(key, value, cmp.Compare[K])
}

// MapWith is Map for key types that need an explicit ordering.
func MapWith[K comparable, V any](key Rule[K], value Rule[V], compare func(a, b K) int) Rule[map[K]V] {
	return Func(
		func(e *Encoder, v map[K]V) error {
			if err := storeCount(e, len(v)); err != nil {
				return err
			}
			for _, k := range slices.SortedFunc(maps.Keys(v), compare) {
				if err := key.Store(e, k); err != nil {
					return err
				}
				if err := value.Store(e, v[k]); err != nil {
					return err
				}
			}
			return nil
		},
		func(d *Decoder, v *map[K]V) error {
			n, err := restoreCount(d)
			if err != nil {
				return err
			}
			if *v == nil {
				*v = make(map[K]V, min(n, maxPrealloc))
			} else {
				clear(*v)
			}
			for range n {
				var (
					k   K
					val V
				)
				if err := key.Restore(d, &k); err != nil {
					return err
				}
				if err := value.Restore(d, &val); err != nil {
					return err
				}
				// A repeated key in the stream overwrites the earlier one.
				(*v)[k] = val
			}
			return nil
		},
	)
}

// Pair holds two values stored one after the other.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf returns the rule of a Pair.
func PairOf[A, B any](first Rule[A], second Rule[B]) Rule[Pair[A, B]] {
	return Func(
		func(e *Encoder, v Pair[A, B]) error {
			if err := first.Store(e, v.First); err != nil {
				return err
			}
			return second.Store(e, v.Second)
		},
		func(d *Decoder, v *Pair[A, B]) error {
			if err := first.Restore(d, &v.First); err != nil {
				return err
			}
			return second.Restore(d, &v.Second)
		},
	)
}

// AtomicValue is implemented by the sync/atomic types.
type AtomicValue[T any] interface {
	Load() T
	Store(T)
}

// Atomic returns the rule of an atomic holder such as *atomic.Int64. Store
// writes a snapshot of the current value; restore replaces the contents.
// Neither step synchronizes with concurrent writers beyond the atomic
// itself. Restoring into a nil holder fails.
func Atomic[T any, A AtomicValue[T]](elem Rule[T]) Rule[A] {
	return Func(
		func(e *Encoder, v A) error {
			return elem.Store(e, v.Load())
		},
		func(d *Decoder, v *A) error {
			var snapshot T
			if err := elem.Restore(d, &snapshot); err != nil {
				return err
			}
			if isNil(*v) {
				return fmt.Errorf("%w: atomic destination is nil", ErrCannotRestore)
			}
			(*v).Store(snapshot)
			return nil
		},
	)
}
