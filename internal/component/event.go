package component

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/simple"
)

// EventSink receives events of one declared kind.
type EventSink struct {
	*object.Base
	kind simple.Kind
	fn   func(sender object.Object, arg simple.Value)
}

// NewEventSink builds a sink for events carrying values of kind.
func NewEventSink(name, description string, parent object.Object, kind simple.Kind, fn func(sender object.Object, arg simple.Value)) (*EventSink, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &EventSink{Base: b, kind: kind, fn: fn}, nil
}

// NewVoidEventSink builds a sink for events without an argument.
func NewVoidEventSink(name, description string, parent object.Object, fn func(sender object.Object)) (*EventSink, error) {
	return NewEventSink(name, description, parent, simple.None, func(sender object.Object, _ simple.Value) {
		if fn != nil {
			fn(sender)
		}
	})
}

// Kind returns the declared argument kind, simple.None for a void sink.
func (s *EventSink) Kind() simple.Kind { return s.kind }

// Notify checks the argument kind and runs the callback. A mismatch fails
// with simple.ErrInvalidAnyType without calling it.
func (s *EventSink) Notify(sender object.Object, arg simple.Value) error {
	if err := arg.Check(s.kind); err != nil {
		return fmt.Errorf("event sink %q: %w", s.Name(), err)
	}
	if s.fn != nil {
		s.fn(sender, arg)
	}
	return nil
}

// EventSource emits events of one declared kind to its subscribers.
type EventSource struct {
	*object.Base
	kind        simple.Kind
	subscribers []*EventSink
}

// NewEventSource builds a source for events carrying values of kind.
func NewEventSource(name, description string, parent object.Object, kind simple.Kind) (*EventSource, error) {
	b, err := object.New(name, description, parent)
	if err != nil {
		return nil, err
	}
	return &EventSource{Base: b, kind: kind}, nil
}

func (s *EventSource) Kind() simple.Kind { return s.kind }

// Subscribe adds sink to the subscribers. The sink must declare the same
// kind as the source.
func (s *EventSource) Subscribe(sink *EventSink) error {
	if sink == nil {
		return fmt.Errorf("%w: nil sink for source %q", ErrInvalidEventSink, s.Name())
	}
	if sink.kind != s.kind {
		return fmt.Errorf("%w: sink %q expects %s, source %q emits %s", ErrInvalidEventSink, sink.Name(), sink.kind, s.Name(), s.kind)
	}
	if slices.Contains(s.subscribers, sink) {
		return fmt.Errorf("%w: sink %q on source %q", ErrEventSinkAlreadySubscribed, sink.Name(), s.Name())
	}
	s.subscribers = append(s.subscribers, sink)
	return nil
}

// Unsubscribe removes sink from the subscribers.
func (s *EventSource) Unsubscribe(sink *EventSink) error {
	i := slices.Index(s.subscribers, sink)
	if i < 0 {
		name := "<nil>"
		if sink != nil {
			name = sink.Name()
		}
		return fmt.Errorf("%w: sink %q on source %q", ErrEventSinkNotSubscribed, name, s.Name())
	}
	s.subscribers = slices.Delete(s.subscribers, i, i+1)
	return nil
}

// Subscribers returns the subscribed sinks in subscription order.
func (s *EventSource) Subscribers() []*EventSink {
	return slices.Clone(s.subscribers)
}

// Emit notifies every subscriber in subscription order. The sender passed
// to the sinks is the owner of the source.
func (s *EventSource) Emit(arg simple.Value) error {
	if err := arg.Check(s.kind); err != nil {
		return fmt.Errorf("event source %q: %w", s.Name(), err)
	}
	var errs []error
	for _, sink := range s.subscribers {
		if err := sink.Notify(s.Parent(), arg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
