package counter

import (
	"log/slog"

	"github.com/specialistvlad/simcore/internal/factory"
	"github.com/specialistvlad/simcore/internal/plugin"
	"github.com/specialistvlad/simcore/internal/types"
)

// LibraryName is the logical name the module is loaded under.
const LibraryName = "counter"

// Module registers the Counter and CounterManager factories and the Limits
// type.
type Module struct{}

var _ plugin.Module = (*Module)(nil)

// Initialise implements plugin.Module.
func (m *Module) Initialise(rt plugin.Runtime, reg *types.Registry) bool {
	if _, err := types.Register(reg, LimitsTypeUUID, "Limits", "Allowed range of a counter.", LimitsRule); err != nil {
		slog.Error("Failed to register type.", "library", LibraryName, "error", err)
		return false
	}

	counterFactory, err := factory.For(CounterUUID, "Counter", "Accumulating counter.", NewCounter)
	if err != nil {
		slog.Error("Failed to build factory.", "library", LibraryName, "error", err)
		return false
	}
	managerFactory, err := factory.For(ManagerUUID, "CounterManager", "Aggregates counters.", NewManager, (*Manager).Unwatch)
	if err != nil {
		slog.Error("Failed to build factory.", "library", LibraryName, "error", err)
		return false
	}

	for _, f := range []*factory.Factory{counterFactory, managerFactory} {
		if err := rt.Factories().Add(f); err != nil {
			slog.Error("Failed to register factory.", "library", LibraryName, "factory", f.Name(), "error", err)
			return false
		}
	}
	slog.Debug("Counter library initialised.", "root", rt.Name())
	return true
}

// Finalise implements plugin.Module.
func (m *Module) Finalise(rt plugin.Runtime) bool {
	slog.Debug("Counter library finalised.", "root", rt.Name())
	return true
}
