package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/config"
	"github.com/specialistvlad/simcore/internal/ctxlog"
)

// build loads the configured libraries, creates the configured components
// and wires the configured connections.
func (a *App) build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, lib := range a.model.Libraries {
		if err := a.sim.LoadLibrary(ctx, lib.Name); err != nil {
			return err
		}
	}
	logger.Debug("Libraries loaded.", "count", len(a.model.Libraries), "factories", a.sim.Factories().Len())

	for _, inst := range a.model.Models {
		if err := a.createInstance(ctx, inst); err != nil {
			return fmt.Errorf("model %q: %w", inst.Name, err)
		}
	}

	for _, conn := range a.model.Connections {
		if err := a.connect(conn); err != nil {
			return err
		}
		logger.Debug("Event sink connected.", "source", conn.Source, "sink", conn.Sink)
	}
	logger.Info("Object graph built.", "models", len(a.model.Models), "connections", len(a.model.Connections))
	return nil
}

func (a *App) createInstance(ctx context.Context, inst *config.Instance) error {
	container, err := a.containerFor(inst.Container)
	if err != nil {
		return err
	}
	c, err := a.sim.CreateInstance(ctx, inst.Factory, inst.Name, inst.Description, container)
	if err != nil {
		return err
	}
	if len(inst.Fields) == 0 {
		return nil
	}
	holder, ok := c.(component.FieldHolder)
	if !ok {
		return fmt.Errorf("component %q has no fields", a.sim.PathOf(c))
	}
	return applyFields(ctx, a.converter, holder, inst.Fields)
}

// containerFor resolves a container given by root container name or by
// absolute path. Empty selects Models.
func (a *App) containerFor(name string) (*component.Container, error) {
	if name == "" {
		return nil, nil
	}
	p := name
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	c, ok := a.sim.ResolveAbsolute(p).(*component.Container)
	if !ok {
		return nil, fmt.Errorf("container %q not found", name)
	}
	return c, nil
}

func (a *App) connect(conn *config.Connection) error {
	source, ok := a.sim.ResolveAbsolute(conn.Source).(*component.EventSource)
	if !ok {
		return fmt.Errorf("event source %q not found", conn.Source)
	}
	sink, ok := a.sim.ResolveAbsolute(conn.Sink).(*component.EventSink)
	if !ok {
		return fmt.Errorf("event sink %q not found", conn.Sink)
	}
	return source.Subscribe(sink)
}

// execute runs the configured entry points in order and stops at the first
// failure.
func (a *App) execute(ctx context.Context) error {
	for _, p := range a.model.Execute {
		ep, ok := a.sim.ResolveAbsolute(p).(*component.EntryPoint)
		if !ok {
			return fmt.Errorf("entry point %q not found", p)
		}
		if err := component.SafeExecute(ctx, ep); err != nil {
			return err
		}
	}
	return nil
}
