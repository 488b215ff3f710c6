// Package config defines the format-agnostic configuration model of the
// simulator, along with the interfaces (Loader, Converter) for loading it
// and for binding configured values to component fields.
//
// Concrete implementations, such as the HCL one, live in separate packages.
package config
