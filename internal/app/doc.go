// Package app contains the application logic of the simulator runtime. It
// defines the App struct, its configuration, and the lifecycle that builds
// the object graph from configuration, runs it and checkpoints it, decoupled
// from any specific entrypoint like a CLI.
package app
