package counter

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/simple"
)

// ManagerUUID identifies the CounterManager factory.
var ManagerUUID = uuid.MustParse("c4d2a8e1-7b39-4f60-8e15-9a3b0d6c2f71")

// Manager owns counters, watches counters owned elsewhere and keeps
// statistics over all of them.
type Manager struct {
	*component.Base
	component.CompositeFacet
	component.AggregateFacet
	component.FieldFacet
	component.PublisherFacet
	component.ConsumerFacet

	counters *component.Container
	watched  *component.Reference
	stats    *component.StructureField
	sum      *component.SimpleField[int64]
	mean     *component.SimpleField[float64]
	onChange *component.EventSink

	// last is the counter that changed most recently.
	last          *Counter
	notifications atomic.Int64
}

// NewManager builds a manager with no counters.
func NewManager(name, description string, parent object.Object) (*Manager, error) {
	b, err := component.NewBase(name, description, parent, ManagerUUID)
	if err != nil {
		return nil, err
	}
	m := &Manager{Base: b}

	if m.counters, err = component.NewContainer("counters", "Owned counters.", m, component.OfType[*Counter]()); err != nil {
		return nil, err
	}
	if err := m.AddContainer(m.counters); err != nil {
		return nil, err
	}
	if m.watched, err = component.NewReference("watched", "Counters owned elsewhere.", m, component.OfType[*Counter]()); err != nil {
		return nil, err
	}
	if err := m.AddReference(m.watched); err != nil {
		return nil, err
	}

	if m.stats, err = component.NewStructureField("stats", "Statistics of the last collect.", m, true); err != nil {
		return nil, err
	}
	if m.sum, err = component.NewField("sum", "Sum of all counts.", m.stats, codec.Int64, true); err != nil {
		return nil, err
	}
	if m.mean, err = component.NewField("mean", "Mean of all counts.", m.stats, codec.Float64, true); err != nil {
		return nil, err
	}
	if err := errors.Join(m.stats.AddField(m.sum), m.stats.AddField(m.mean)); err != nil {
		return nil, err
	}
	if err := m.AddField(m.stats); err != nil {
		return nil, err
	}

	for _, ep := range []struct {
		name, description string
		fn                func()
	}{
		{"watch", "Subscribes to the changes of every counter.", m.Watch},
		{"collect", "Recomputes the statistics.", m.Collect},
	} {
		entry, err := component.NewEntryPoint(ep.name, ep.description, m, ep.fn)
		if err != nil {
			return nil, err
		}
		if err := m.AddEntryPoint(entry); err != nil {
			return nil, err
		}
	}

	if m.onChange, err = component.NewEventSink("onChange", "Receives counter changes.", m, simple.Int64, m.changed); err != nil {
		return nil, err
	}
	return m, m.AddEventSink(m.onChange)
}

func (m *Manager) Counters() *component.Container { return m.counters }
func (m *Manager) Watched() *component.Reference  { return m.watched }
func (m *Manager) Sum() int64                     { return m.sum.Get() }
func (m *Manager) Mean() float64                  { return m.mean.Get() }
func (m *Manager) Last() *Counter                 { return m.last }
func (m *Manager) Notifications() int64           { return m.notifications.Load() }

// all returns owned counters first, then watched ones.
func (m *Manager) all() []*Counter {
	var out []*Counter
	for _, items := range [][]component.Component{m.counters.Items(), m.watched.Items()} {
		for _, c := range items {
			if counter, ok := c.(*Counter); ok {
				out = append(out, counter)
			}
		}
	}
	return out
}

// Watch subscribes the manager to every counter it does not listen to yet.
func (m *Manager) Watch() {
	for _, c := range m.all() {
		err := c.Changed().Subscribe(m.onChange)
		if err != nil && !errors.Is(err, component.ErrEventSinkAlreadySubscribed) {
			slog.Warn("Manager could not watch counter.", "manager", m.Name(), "counter", c.Name(), "error", err)
		}
	}
}

// Unwatch removes every subscription made by Watch.
func (m *Manager) Unwatch() {
	for _, c := range m.all() {
		_ = c.Changed().Unsubscribe(m.onChange)
	}
}

// Collect recomputes the sum and mean over all counters.
func (m *Manager) Collect() {
	counters := m.all()
	var sum int64
	for _, c := range counters {
		sum += c.Count()
	}
	m.sum.Set(sum)
	if len(counters) == 0 {
		m.mean.Set(0)
		return
	}
	m.mean.Set(float64(sum) / float64(len(counters)))
}

func (m *Manager) changed(sender object.Object, _ simple.Value) {
	m.notifications.Add(1)
	if c, ok := sender.(*Counter); ok {
		m.last = c
	}
}

// Store writes the last changed counter as a path and the notification
// count.
func (m *Manager) Store(e *codec.Encoder) error {
	if err := codec.Ref[*Counter](e.Graph()).Store(e, m.last); err != nil {
		return err
	}
	return codec.Atomic[int64, *atomic.Int64](codec.Int64).Store(e, &m.notifications)
}

func (m *Manager) Restore(d *codec.Decoder) error {
	if err := codec.Ref[*Counter](d.Graph()).Restore(d, &m.last); err != nil {
		return err
	}
	notifications := &m.notifications
	return codec.Atomic[int64, *atomic.Int64](codec.Int64).Restore(d, &notifications)
}
