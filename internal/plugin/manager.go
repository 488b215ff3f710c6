package plugin

import (
	"context"
	"fmt"
	goplugin "plugin"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/specialistvlad/simcore/internal/ctxlog"
	"github.com/specialistvlad/simcore/internal/factory"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/types"
)

// ABIVersion is the version of the library contract implemented by this
// runtime.
const ABIVersion = "1.0.0"

// Runtime is the context handed to libraries.
type Runtime interface {
	object.Object
	Factories() *factory.Registry
	ResolveAbsolute(path string) object.Object
	PathOf(obj object.Object) string
}

type (
	InitialiseFunc = func(rt Runtime, reg *types.Registry) bool
	FinaliseFunc   = func(rt Runtime) bool
)

// Module is a library linked into the binary.
type Module interface {
	Initialise(rt Runtime, reg *types.Registry) bool
	Finalise(rt Runtime) bool
}

// Library is a loaded and initialised library.
type Library struct {
	Name string
	Path string // empty for a linked Module
	ABI  string

	handle    *Handle
	finalise  FinaliseFunc
	finalised bool
}

// Static reports whether the library is linked into the binary.
func (l *Library) Static() bool { return l.handle == nil }

// Manager loads libraries once each and finalises them in reverse order.
type Manager struct {
	dir        string
	constraint *semver.Constraints
	static     map[string]Module
	libraries  []*Library
	byName     map[string]*Library
	open       func(string) (symbolTable, error)
}

// NewManager creates a manager loading dynamic libraries from dir. An empty
// constraint accepts any ABI version.
func NewManager(dir, constraint string) (*Manager, error) {
	m := &Manager{
		dir:    dir,
		static: make(map[string]Module),
		byName: make(map[string]*Library),
	}
	if constraint != "" {
		c, err := semver.NewConstraint(constraint)
		if err != nil {
			return nil, fmt.Errorf("parsing ABI constraint %q: %w", constraint, err)
		}
		m.constraint = c
	}
	return m, nil
}

// RegisterStatic makes a linked module available under a logical name.
func (m *Manager) RegisterStatic(name string, mod Module) {
	m.static[name] = mod
}

// Dir returns the directory dynamic libraries are loaded from.
func (m *Manager) Dir() string { return m.dir }

// Loaded returns the library loaded under name, or nil.
func (m *Manager) Loaded(name string) *Library { return m.byName[name] }

// Libraries returns the loaded libraries in load order.
func (m *Manager) Libraries() []*Library { return slices.Clone(m.libraries) }

// Load opens the library called name and runs its Initialise function.
// Loading a name a second time returns the library loaded first.
func (m *Manager) Load(ctx context.Context, name string, rt Runtime, reg *types.Registry) (*Library, error) {
	logger := ctxlog.FromContext(ctx).With("library", name)

	if lib, ok := m.byName[name]; ok {
		logger.Debug("Library already loaded.")
		return lib, nil
	}

	var (
		lib        *Library
		initialise InitialiseFunc
	)
	if mod, ok := m.static[name]; ok {
		abi := ABIVersion
		if v, ok := mod.(interface{ ABIVersion() string }); ok {
			abi = v.ABIVersion()
		}
		lib = &Library{Name: name, ABI: abi, finalise: mod.Finalise}
		initialise = mod.Initialise
	} else {
		var err error
		lib, initialise, err = m.openDynamic(name)
		if err != nil {
			logger.Error("Failed to load library.", "error", err)
			return nil, err
		}
	}

	if err := m.checkABI(lib); err != nil {
		logger.Error("Library ABI rejected.", "abi", lib.ABI, "error", err)
		lib.close()
		return nil, err
	}

	logger.Debug("Initialising library.", "path", lib.Path, "static", lib.Static())
	if !initialise(rt, reg) {
		lib.close()
		err := fmt.Errorf("%w: %q: Initialise returned false", ErrInvalidLibrary, name)
		logger.Error("Failed to initialise library.", "error", err)
		return nil, err
	}

	m.libraries = append(m.libraries, lib)
	m.byName[name] = lib
	logger.Info("Library loaded.", "abi", lib.ABI, "static", lib.Static())
	return lib, nil
}

func (m *Manager) openDynamic(name string) (*Library, InitialiseFunc, error) {
	open := m.open
	if open == nil {
		open = func(p string) (symbolTable, error) { return goplugin.Open(p) }
	}
	h, err := openWith(m.dir, name, open)
	if err != nil {
		return nil, nil, err
	}
	initialise, err := Symbol[InitialiseFunc](h, "Initialise")
	if err != nil {
		h.Close()
		return nil, nil, err
	}
	finalise, err := Symbol[FinaliseFunc](h, "Finalise")
	if err != nil {
		h.Close()
		return nil, nil, err
	}
	abi := ABIVersion
	if v, err := Symbol[*string](h, "ABIVersion"); err == nil {
		abi = *v
	}
	return &Library{Name: name, Path: h.Path(), ABI: abi, handle: h, finalise: finalise}, initialise, nil
}

func (m *Manager) checkABI(lib *Library) error {
	if m.constraint == nil {
		return nil
	}
	v, err := semver.NewVersion(lib.ABI)
	if err != nil {
		return fmt.Errorf("%w: %q declares ABI %q: %w", ErrIncompatibleABI, lib.Name, lib.ABI, err)
	}
	if !m.constraint.Check(v) {
		return fmt.Errorf("%w: %q declares ABI %s, runtime accepts %s", ErrIncompatibleABI, lib.Name, v, m.constraint)
	}
	return nil
}

func (l *Library) close() {
	if l.handle != nil {
		l.handle.Close()
	}
}

// FinaliseAll runs Finalise of every loaded library, the last loaded first.
// Every library is finalised even if an earlier one fails; the failures are
// returned together.
func (m *Manager) FinaliseAll(ctx context.Context, rt Runtime) error {
	logger := ctxlog.FromContext(ctx)
	var failed []string
	for _, lib := range slices.Backward(m.libraries) {
		if lib.finalised {
			continue
		}
		lib.finalised = true
		if !lib.finalise(rt) {
			logger.Error("Library failed to finalise.", "library", lib.Name)
			failed = append(failed, lib.Name)
		} else {
			logger.Debug("Library finalised.", "library", lib.Name)
		}
		lib.close()
	}
	if len(failed) > 0 {
		return fmt.Errorf("%w: Finalise returned false for %v", ErrInvalidLibrary, failed)
	}
	return nil
}
