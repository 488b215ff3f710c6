/*
Package sim provides the Simulator, the root node of the runtime graph.

The simulator is addressed as "/" and owns two containers, Models and
Services. It holds the factory registry, the type registry, the resolver
and the library manager, and is the Runtime handed to libraries when they
are initialised.

Typical lifetime:

	s, _ := sim.New(sim.Options{Name: "demo"})
	_ = s.LoadLibrary(ctx, "counter")
	c, _ := s.CreateInstance(ctx, "Counter", "c1", "", s.Models())
	_ = s.Store(ctx, "checkpoints", "state.bin")
	_ = s.Finalise(ctx)
*/
package sim
