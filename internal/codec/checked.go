package codec

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// TypeTag returns the 64-bit tag written in front of checked values of T.
func TypeTag[T any]() uint64 {
	return xxhash.Sum64String(reflect.TypeFor[T]().String())
}

// StoreChecked writes the type tag of T and then v.
func StoreChecked[T any](e *Encoder, rule Rule[T], v T) error {
	if err := Uint64.Store(e, TypeTag[T]()); err != nil {
		return err
	}
	return rule.Store(e, v)
}

// RestoreChecked reads a value written by StoreChecked and fails with
// ErrCannotRestore when the tag does not belong to T.
func RestoreChecked[T any](d *Decoder, rule Rule[T], v *T) error {
	var tag uint64
	if err := Uint64.Restore(d, &tag); err != nil {
		return err
	}
	if want := TypeTag[T](); tag != want {
		return fmt.Errorf("%w: stream holds tag %#x, expected %s (%#x)", ErrCannotRestore, tag, reflect.TypeFor[T](), want)
	}
	return rule.Restore(d, v)
}
