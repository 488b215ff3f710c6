package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	goplugin "plugin"
	"testing"

	"github.com/specialistvlad/simcore/internal/factory"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRuntime struct {
	*object.Base
	factories *factory.Registry
}

func (r *fakeRuntime) Factories() *factory.Registry         { return r.factories }
func (r *fakeRuntime) ResolveAbsolute(string) object.Object { return nil }
func (r *fakeRuntime) PathOf(object.Object) string          { return "" }

func newRuntime() *fakeRuntime {
	return &fakeRuntime{Base: object.MustNew("Simulator", "", nil), factories: factory.NewRegistry()}
}

type fakeSymbols map[string]goplugin.Symbol

func (s fakeSymbols) Lookup(name string) (goplugin.Symbol, error) {
	if sym, ok := s[name]; ok {
		return sym, nil
	}
	return nil, errors.New("symbol not found")
}

// fakeDir creates empty library files so the existence check passes.
func fakeDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, LibraryFileName(n)), nil, 0o644))
	}
	return dir
}

type recorder struct {
	events []string
}

func (r *recorder) symbols(name string, initOK, finOK bool) fakeSymbols {
	return fakeSymbols{
		"Initialise": func(Runtime, *types.Registry) bool {
			r.events = append(r.events, "init "+name)
			return initOK
		},
		"Finalise": func(Runtime) bool {
			r.events = append(r.events, "fin "+name)
			return finOK
		},
	}
}

func newManager(t *testing.T, dir, constraint string, libs map[string]fakeSymbols) *Manager {
	t.Helper()
	m, err := NewManager(dir, constraint)
	require.NoError(t, err)
	m.open = func(p string) (symbolTable, error) {
		for name, syms := range libs {
			if filepath.Base(p) == LibraryFileName(name) {
				return syms, nil
			}
		}
		return nil, errors.New("cannot open")
	}
	return m
}

func TestLibraryFileName(t *testing.T) {
	testCases := []struct {
		goos     string
		expected string
	}{
		{"linux", "libcounter.so"},
		{"freebsd", "libcounter.so"},
		{"darwin", "libcounter.dylib"},
		{"windows", "counter.dll"},
	}
	for _, tc := range testCases {
		t.Run(tc.goos, func(t *testing.T) {
			assert.Equal(t, tc.expected, libraryFileName(tc.goos, "counter"))
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(t.TempDir(), "absent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLibraryNotFound)
	assert.Contains(t, err.Error(), LibraryFileName("absent"))
}

func TestSymbol(t *testing.T) {
	version := "1.2.0"
	h := &Handle{name: "x", symbols: fakeSymbols{
		"Initialise": func(Runtime, *types.Registry) bool { return true },
		"ABIVersion": &version,
	}}

	_, err := Symbol[InitialiseFunc](h, "Initialise")
	require.NoError(t, err)

	v, err := Symbol[*string](h, "ABIVersion")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", *v)

	_, err = Symbol[FinaliseFunc](h, "Initialise")
	assert.ErrorIs(t, err, ErrInvalidLibrary, "wrong signature")

	_, err = Symbol[FinaliseFunc](h, "Finalise")
	assert.ErrorIs(t, err, ErrInvalidLibrary, "missing symbol")

	require.NoError(t, h.Close())
	_, err = Symbol[InitialiseFunc](h, "Initialise")
	assert.Error(t, err)
}

func TestManager_LoadAndFinaliseOrder(t *testing.T) {
	rec := &recorder{}
	dir := fakeDir(t, "first", "second")
	m := newManager(t, dir, "", map[string]fakeSymbols{
		"first":  rec.symbols("first", true, true),
		"second": rec.symbols("second", true, true),
	})
	rt := newRuntime()
	reg := types.NewRegistry()
	ctx := context.Background()

	first, err := m.Load(ctx, "first", rt, reg)
	require.NoError(t, err)
	assert.False(t, first.Static())
	assert.Equal(t, filepath.Join(dir, LibraryFileName("first")), first.Path)

	again, err := m.Load(ctx, "first", rt, reg)
	require.NoError(t, err)
	assert.Same(t, first, again, "loading twice is idempotent")

	_, err = m.Load(ctx, "second", rt, reg)
	require.NoError(t, err)
	assert.Len(t, m.Libraries(), 2)

	require.NoError(t, m.FinaliseAll(ctx, rt))
	require.NoError(t, m.FinaliseAll(ctx, rt))
	assert.Equal(t, []string{"init first", "init second", "fin second", "fin first"}, rec.events)
}

func TestManager_LoadErrors(t *testing.T) {
	rec := &recorder{}
	version := "2.1.0"
	incompatible := rec.symbols("newer", true, true)
	incompatible["ABIVersion"] = &version

	libs := map[string]fakeSymbols{
		"noinit":  {"Finalise": func(Runtime) bool { return true }},
		"nofin":   {"Initialise": func(Runtime, *types.Registry) bool { return true }},
		"refuses": rec.symbols("refuses", false, true),
		"newer":   incompatible,
	}
	dir := fakeDir(t, "noinit", "nofin", "refuses", "newer")
	m := newManager(t, dir, ">= 1.0.0, < 2.0.0", libs)

	testCases := []struct {
		name     string
		expected error
	}{
		{"missing", ErrLibraryNotFound},
		{"noinit", ErrInvalidLibrary},
		{"nofin", ErrInvalidLibrary},
		{"refuses", ErrInvalidLibrary},
		{"newer", ErrIncompatibleABI},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lib, err := m.Load(context.Background(), tc.name, newRuntime(), types.NewRegistry())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, lib)
			assert.Nil(t, m.Loaded(tc.name))
		})
	}
	assert.Empty(t, m.Libraries())
	assert.NotContains(t, rec.events, "init newer", "an incompatible library is not initialised")
}

type staticModule struct {
	initialised, finalised bool
}

func (s *staticModule) Initialise(rt Runtime, _ *types.Registry) bool {
	s.initialised = rt.Name() == "Simulator"
	return true
}

func (s *staticModule) Finalise(Runtime) bool {
	s.finalised = true
	return false
}

func TestManager_StaticModule(t *testing.T) {
	m, err := NewManager(t.TempDir(), "^1.0.0")
	require.NoError(t, err)
	mod := &staticModule{}
	m.RegisterStatic("core", mod)

	lib, err := m.Load(context.Background(), "core", newRuntime(), types.NewRegistry())
	require.NoError(t, err)
	assert.True(t, lib.Static())
	assert.Equal(t, ABIVersion, lib.ABI)
	assert.True(t, mod.initialised)

	err = m.FinaliseAll(context.Background(), newRuntime())
	assert.ErrorIs(t, err, ErrInvalidLibrary)
	assert.True(t, mod.finalised)
}

func TestNewManager_BadConstraint(t *testing.T) {
	_, err := NewManager("", "not a constraint")
	assert.Error(t, err)
}
