package sim

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/simcore/internal/component"
	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/specialistvlad/simcore/internal/factory"
	"github.com/specialistvlad/simcore/internal/metrics"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/plugin"
	"github.com/specialistvlad/simcore/internal/resolver"
	"github.com/specialistvlad/simcore/internal/storage"
	"github.com/specialistvlad/simcore/internal/types"
)

const (
	ModelsContainer   = "Models"
	ServicesContainer = "Services"
)

// ErrUnknownFactory is returned by CreateInstance when no factory matches.
var ErrUnknownFactory = errors.New("unknown factory")

// Options configure a Simulator.
type Options struct {
	Name        string
	Description string
	// PluginDir is where dynamic libraries are loaded from.
	PluginDir string
	// ABI is a semver constraint the ABI version of every library must
	// satisfy. Empty accepts all.
	ABI     string
	Storage storage.Options
	// Metrics defaults to a fresh set of collectors.
	Metrics *metrics.Metrics
}

type instance struct {
	component component.Component
	factory   *factory.Factory
}

// Simulator is the root of the runtime graph.
type Simulator struct {
	*object.Base
	component.CompositeFacet

	models    *component.Container
	services  *component.Container
	factories *factory.Registry
	types     *types.Registry
	resolver  *resolver.Resolver
	plugins   *plugin.Manager
	metrics   *metrics.Metrics
	storage   storage.Options
	instances []instance
}

var _ plugin.Runtime = (*Simulator)(nil)

// New creates a simulator with empty Models and Services containers.
func New(opts Options) (*Simulator, error) {
	if opts.Name == "" {
		opts.Name = "Simulator"
	}
	base, err := object.New(opts.Name, opts.Description, nil)
	if err != nil {
		return nil, err
	}
	plugins, err := plugin.NewManager(opts.PluginDir, opts.ABI)
	if err != nil {
		return nil, err
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	s := &Simulator{
		Base:      base,
		factories: factory.NewRegistry(),
		types:     types.NewRegistry(),
		plugins:   plugins,
		metrics:   m,
		storage:   opts.Storage,
	}
	s.resolver = resolver.New(s, resolver.WithMissHook(func(string) {
		s.metrics.ResolveMisses.Inc()
	}))

	if s.models, err = s.addContainer(ModelsContainer, "Root models of the simulation."); err != nil {
		return nil, err
	}
	if s.services, err = s.addContainer(ServicesContainer, "Services of the simulation."); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulator) addContainer(name, description string) (*component.Container, error) {
	c, err := component.NewContainer(name, description, s)
	if err != nil {
		return nil, err
	}
	if err := s.AddContainer(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Simulator) Models() *component.Container   { return s.models }
func (s *Simulator) Services() *component.Container { return s.services }
func (s *Simulator) Factories() *factory.Registry   { return s.factories }
func (s *Simulator) Types() *types.Registry         { return s.types }
func (s *Simulator) Resolver() *resolver.Resolver   { return s.resolver }
func (s *Simulator) Plugins() *plugin.Manager       { return s.plugins }
func (s *Simulator) Metrics() *metrics.Metrics      { return s.metrics }

// ResolveAbsolute resolves an absolute path from the simulator.
func (s *Simulator) ResolveAbsolute(path string) object.Object {
	return s.resolver.ResolveAbsolute(path)
}

// ResolveRelative resolves a path relative to sender.
func (s *Simulator) ResolveRelative(path string, sender object.Object) object.Object {
	return s.resolver.ResolveRelative(path, sender)
}

// PathOf returns the absolute path of obj.
func (s *Simulator) PathOf(obj object.Object) string {
	return s.resolver.PathOf(obj)
}

// RegisterModule makes a library linked into the binary loadable by name.
func (s *Simulator) RegisterModule(name string, mod plugin.Module) {
	s.plugins.RegisterStatic(name, mod)
}

// LoadLibrary loads the named library and lets it register its factories
// and types. Loading the same name twice has no effect.
func (s *Simulator) LoadLibrary(ctx context.Context, name string) error {
	logger := ctxlog.FromContext(ctx)
	alreadyLoaded := s.plugins.Loaded(name) != nil

	lib, err := s.plugins.Load(ctx, name, s, s.types)
	if err != nil {
		s.metrics.LibraryLoadErrors.Inc()
		return fmt.Errorf("loading library %q: %w", name, err)
	}
	if !alreadyLoaded {
		kind := "dynamic"
		if lib.Static() {
			kind = "static"
		}
		s.metrics.LibrariesLoaded.WithLabelValues(kind).Inc()
	}
	s.metrics.FactoriesRegistered.Set(float64(s.factories.Len()))
	logger.Debug("Factories registered.", "library", name, "factories", s.factories.Len())
	return nil
}

// CreateInstance creates a component with the factory found by name or
// UUID and adds it to container.
func (s *Simulator) CreateInstance(ctx context.Context, factoryRef, name, description string, container *component.Container) (component.Component, error) {
	logger := ctxlog.FromContext(ctx).With("factory", factoryRef, "name", name)

	f := s.factories.Lookup(factoryRef)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFactory, factoryRef)
	}
	if container == nil {
		container = s.models
	}

	c, err := f.CreateInstance(name, description, container)
	if err != nil {
		return nil, err
	}
	if err := container.Add(c); err != nil {
		f.DeleteInstance(c)
		return nil, fmt.Errorf("adding %q to %q: %w", name, container.Name(), err)
	}

	s.instances = append(s.instances, instance{component: c, factory: f})
	s.metrics.InstancesCreated.WithLabelValues(f.Name()).Inc()
	logger.Debug("Component created.", "path", s.PathOf(c))
	return c, nil
}

// Finalise runs Finalise of every library, the last loaded first, then
// deletes every created component, the last created first.
func (s *Simulator) Finalise(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Finalising simulator.", "libraries", len(s.plugins.Libraries()), "instances", len(s.instances))

	err := s.plugins.FinaliseAll(ctx, s)
	for _, inst := range slices.Backward(s.instances) {
		inst.factory.DeleteInstance(inst.component)
	}
	s.instances = nil

	if err != nil {
		logger.Error("Simulator finalised with errors.", "error", err)
		return err
	}
	logger.Info("Simulator finalised.")
	return nil
}
