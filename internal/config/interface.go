package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, translates it into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter binds configured values to Go values.
type Converter interface {
	// DecodeValue converts val to the type target points to and stores it
	// there.
	DecodeValue(ctx context.Context, val cty.Value, target any) error
}
