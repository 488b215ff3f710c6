package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of the whole
// simulator configuration.
type Model struct {
	Runtime     Runtime
	Storage     Storage
	Libraries   []*Library
	Models      []*Instance
	Connections []*Connection
	// Execute lists entry point paths run once the graph is built, in order.
	Execute []string
}

// Runtime describes the root of the simulation.
type Runtime struct {
	Name        string
	Description string
	PluginDir   string
	// ABI is a semver constraint on the ABI version of dynamic libraries.
	ABI string
}

// Storage describes where checkpoints go and how they are encoded.
type Storage struct {
	Dir         string
	Compression string
}

// Library is a component library to load at startup.
type Library struct {
	Name string
}

// Instance is a component to create at startup.
type Instance struct {
	Name        string
	Factory     string
	Description string
	// Container is the root container the component is added to. Empty
	// means Models.
	Container string
	// Fields holds initial field values keyed by field name. Nested objects
	// address structure fields and lists address array fields.
	Fields map[string]cty.Value
}

// Connection subscribes an event sink to an event source, both given as
// absolute paths.
type Connection struct {
	Source string
	Sink   string
}
