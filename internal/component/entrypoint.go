package component

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/specialistvlad/simcore/internal/object"
)

// EntryPoint is a named zero-argument callback.
type EntryPoint struct {
	*object.Base
	fn func()
}

// NewEntryPoint builds an entry point running fn.
func NewEntryPoint(name, description string, parent object.Object, fn func()) (*EntryPoint, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &EntryPoint{Base: b, fn: fn}, nil
}

// Execute runs the callback synchronously. A panic in the callback is not
// recovered; use SafeExecute for that.
func (ep *EntryPoint) Execute() {
	if ep.fn != nil {
		ep.fn()
	}
}

// SafeExecute runs ep and reports a panic in its callback as
// ErrExecutionFailed.
func SafeExecute(ctx context.Context, ep *EntryPoint) (err error) {
	logger := ctxlog.FromContext(ctx).With("entry_point", ep.Name())
	if owner := ep.Parent(); owner != nil {
		logger = logger.With("owner", owner.Name())
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Entry point panicked.", "panic", r)
			err = fmt.Errorf("%w: entry point %q: %v", ErrExecutionFailed, ep.Name(), r)
		}
	}()

	logger.Debug("Executing entry point.")
	ep.Execute()
	logger.Debug("Entry point executed.")
	return nil
}
