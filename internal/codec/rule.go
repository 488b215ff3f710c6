package codec

// Rule stores and restores values of type T.
type Rule[T any] interface {
	Store(e *Encoder, v T) error
	Restore(d *Decoder, v *T) error
}

type funcRule[T any] struct {
	store   func(*Encoder, T) error
	restore func(*Decoder, *T) error
}

func (r funcRule[T]) Store(e *Encoder, v T) error    { return r.store(e, v) }
func (r funcRule[T]) Restore(d *Decoder, v *T) error { return r.restore(d, v) }

// Func builds a rule from a pair of functions. It is the usual way to write
// the rule of a struct: store each field in declared order with its own rule.
func Func[T any](store func(*Encoder, T) error, restore func(*Decoder, *T) error) Rule[T] {
	return funcRule[T]{store: store, restore: restore}
}

// Convert derives a rule for T from the rule of a representation type U.
func Convert[T, U any](rule Rule[U], to func(T) U, from func(U) T) Rule[T] {
	return Func(
		func(e *Encoder, v T) error {
			return rule.Store(e, to(v))
		},
		func(d *Decoder, v *T) error {
			var u U
			if err := rule.Restore(d, &u); err != nil {
				return err
			}
			*v = from(u)
			return nil
		},
	)
}
