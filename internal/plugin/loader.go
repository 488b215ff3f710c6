package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	goplugin "plugin"
	"runtime"
)

var (
	ErrLibraryNotFound = errors.New("library not found")
	ErrInvalidLibrary  = errors.New("invalid library")
	ErrIncompatibleABI = errors.New("incompatible library ABI")
	errHandleClosed    = errors.New("library handle is closed")
)

// LibraryFileName maps a logical library name to the file name used on the
// current platform.
func LibraryFileName(name string) string {
	return libraryFileName(runtime.GOOS, name)
}

func libraryFileName(goos, name string) string {
	switch goos {
	case "windows":
		return name + ".dll"
	case "darwin", "ios":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}

// symbolTable is what an opened library exposes. *plugin.Plugin implements it.
type symbolTable interface {
	Lookup(name string) (goplugin.Symbol, error)
}

// Handle is an opened library. Go plugins cannot be unloaded, so Close only
// stops further symbol lookups.
type Handle struct {
	name    string
	path    string
	symbols symbolTable
	closed  bool
}

func (h *Handle) Name() string { return h.name }
func (h *Handle) Path() string { return h.path }

// Close releases the handle.
func (h *Handle) Close() error {
	h.closed = true
	return nil
}

// Open loads the library called name from dir.
func Open(dir, name string) (*Handle, error) {
	return openWith(dir, name, func(p string) (symbolTable, error) {
		return goplugin.Open(p)
	})
}

func openWith(dir, name string, open func(string) (symbolTable, error)) (*Handle, error) {
	p := filepath.Join(dir, LibraryFileName(name))
	if _, err := os.Stat(p); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLibraryNotFound, p, err)
	}
	symbols, err := open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrLibraryNotFound, p, err)
	}
	return &Handle{name: name, path: p, symbols: symbols}, nil
}

// Symbol looks up an exported function or variable of type T. Exported
// variables are returned as pointers, so T is *V for a variable of type V.
func Symbol[T any](h *Handle, name string) (T, error) {
	var zero T
	if h.closed {
		return zero, fmt.Errorf("%w: %q", errHandleClosed, h.name)
	}
	sym, err := h.symbols.Lookup(name)
	if err != nil {
		return zero, fmt.Errorf("%w: %q does not export %s: %w", ErrInvalidLibrary, h.name, name, err)
	}
	typed, ok := sym.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q exports %s as %T, expected %T", ErrInvalidLibrary, h.name, name, sym, zero)
	}
	return typed, nil
}
