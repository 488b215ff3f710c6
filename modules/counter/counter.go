package counter

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/simple"
)

// CounterUUID identifies the Counter factory.
var CounterUUID = uuid.MustParse("0b6e4f7a-3c21-4d8a-b5e9-2f7d61a0c3e8")

// SampleCount is the number of past values a counter keeps.
const SampleCount = 4

// Counter adds its step to its count on every increment and keeps the last
// SampleCount values. Leaving the configured limits raises the overflow
// failure.
type Counter struct {
	*component.Base
	component.FieldFacet
	component.FallibleFacet
	component.PublisherFacet
	component.ConsumerFacet
	component.ProviderFacet

	count    *component.SimpleField[int64]
	step     *component.SimpleField[int64]
	limits   *component.SimpleField[Limits]
	samples  *component.ArrayField[int64]
	overflow *component.Failure
	changed  *component.EventSource
}

// NewCounter builds a counter with a step of one and no limits.
func NewCounter(name, description string, parent object.Object) (*Counter, error) {
	b, err := component.NewBase(name, description, parent, CounterUUID)
	if err != nil {
		return nil, err
	}
	c := &Counter{Base: b}

	if c.count, err = component.NewField("count", "Current value.", c, codec.Int64, true); err != nil {
		return nil, err
	}
	if c.step, err = component.NewField("step", "Added on every increment.", c, codec.Int64, false); err != nil {
		return nil, err
	}
	c.step.Set(1)
	if c.limits, err = component.NewField("limits", "Allowed range of the count.", c, LimitsRule, false); err != nil {
		return nil, err
	}
	if c.samples, err = component.NewArrayField("samples", "Most recent values, newest last.", c, SampleCount, codec.Int64, true); err != nil {
		return nil, err
	}
	for _, f := range []component.Field{c.count, c.step, c.limits, c.samples} {
		if err := c.AddField(f); err != nil {
			return nil, err
		}
	}

	if c.overflow, err = component.NewFailure("overflow", "The count left its limits.", c); err != nil {
		return nil, err
	}
	if err := c.AddFailure(c.overflow); err != nil {
		return nil, err
	}

	increment, err := component.NewEntryPoint("increment", "Adds step to count.", c, c.Increment)
	if err != nil {
		return nil, err
	}
	if err := c.AddEntryPoint(increment); err != nil {
		return nil, err
	}

	reset, err := component.NewVoidEventSink("reset", "Clears the count, the samples and the overflow.", c, func(object.Object) { c.Reset() })
	if err != nil {
		return nil, err
	}
	if err := c.AddEventSink(reset); err != nil {
		return nil, err
	}

	if c.changed, err = component.NewEventSource("changed", "Emits the new count.", c, simple.Int64); err != nil {
		return nil, err
	}
	return c, c.AddEventSource(c.changed)
}

func (c *Counter) Count() int64                    { return c.count.Get() }
func (c *Counter) Step() int64                     { return c.step.Get() }
func (c *Counter) SetStep(step int64)              { c.step.Set(step) }
func (c *Counter) Limits() Limits                  { return c.limits.Get() }
func (c *Counter) SetLimits(l Limits)              { c.limits.Set(l) }
func (c *Counter) Samples() []int64                { return c.samples.Values() }
func (c *Counter) Overflowed() bool                { return c.overflow.IsFailed() }
func (c *Counter) Changed() *component.EventSource { return c.changed }

// Increment adds step to count, records the sample and emits changed.
func (c *Counter) Increment() {
	c.set(c.count.Get() + c.step.Get())
}

// Reset clears the count, the samples and the overflow failure.
func (c *Counter) Reset() {
	_ = c.samples.SetValues(make([]int64, SampleCount))
	c.overflow.Unfail()
	c.set(0)
}

func (c *Counter) set(v int64) {
	c.count.Set(v)

	samples := c.samples.Values()
	copy(samples, samples[1:])
	samples[len(samples)-1] = v
	_ = c.samples.SetValues(samples)

	if !c.limits.Get().Contains(v) {
		c.overflow.Fail()
	}
	if err := c.changed.Emit(simple.OfInt64(v)); err != nil {
		slog.Warn("Counter change notification failed.", "counter", c.Name(), "error", err)
	}
}
