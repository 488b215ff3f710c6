package component

import (
	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/object"
)

// Failure is a named flag a fallible component raises.
type Failure struct {
	*object.Base
	failed bool
}

// NewFailure builds a failure in the unfailed state.
func NewFailure(name, description string, parent object.Object) (*Failure, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &Failure{Base: b}, nil
}

func (f *Failure) Fail()          { f.failed = true }
func (f *Failure) Unfail()        { f.failed = false }
func (f *Failure) IsFailed() bool { return f.failed }

func (f *Failure) Store(e *codec.Encoder) error   { return codec.Bool.Store(e, f.failed) }
func (f *Failure) Restore(d *codec.Decoder) error { return codec.Bool.Restore(d, &f.failed) }
