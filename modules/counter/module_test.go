package counter

import (
	"context"
	"testing"

	"github.com/specialistvlad/simcore/internal/storage"
	"github.com/specialistvlad/simcore/internal/sim"
	"github.com/specialistvlad/simcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulator(t *testing.T) *sim.Simulator {
	t.Helper()
	s, err := sim.New(sim.Options{Name: "Test"})
	require.NoError(t, err)
	s.RegisterModule(LibraryName, &Module{})
	require.NoError(t, s.LoadLibrary(context.Background(), LibraryName))
	return s
}

func TestModule_Initialise(t *testing.T) {
	s := newSimulator(t)

	assert.NotNil(t, s.Factories().ByName("Counter"))
	assert.NotNil(t, s.Factories().ByUUID(ManagerUUID))
	limits := types.Of[Limits](s.Types())
	require.NotNil(t, limits)
	assert.Equal(t, LimitsTypeUUID, limits.Uuid)

	assert.False(t, (&Module{}).Initialise(s, s.Types()), "registering the type twice fails")
}

func TestModule_Checkpoint(t *testing.T) {
	ctx := context.Background()
	s := newSimulator(t)

	mc, err := s.CreateInstance(ctx, "CounterManager", "mgr", "", s.Services())
	require.NoError(t, err)
	mgr := mc.(*Manager)
	oc, err := s.CreateInstance(ctx, "Counter", "c1", "", mgr.Counters())
	require.NoError(t, err)
	owned := oc.(*Counter)
	wc, err := s.CreateInstance(ctx, CounterUUID.String(), "c2", "", nil)
	require.NoError(t, err)
	watched := wc.(*Counter)
	require.NoError(t, mgr.Watched().Add(watched))

	assert.Same(t, owned.count, s.ResolveAbsolute("/Services/mgr/counters/c1/count"))
	assert.Same(t, watched, s.ResolveAbsolute("/Services/mgr/watched/c2"))
	assert.Same(t, mgr.sum, s.ResolveAbsolute("/Services/mgr/stats/sum"))

	mgr.Watch()
	owned.Increment()
	watched.Increment()
	watched.Increment()
	mgr.Collect()

	buf := storage.NewBuffer(nil)
	require.NoError(t, s.StoreTo(ctx, buf))

	owned.Reset()
	watched.Reset()
	owned.SetStep(7)
	mgr.Collect()
	mgr.last = nil

	require.NoError(t, s.RestoreFrom(ctx, buf))
	assert.Equal(t, int64(1), owned.Count())
	assert.Equal(t, int64(7), owned.Step(), "step is configuration, not state")
	assert.Equal(t, []int64{0, 0, 1, 2}, watched.Samples())
	assert.Equal(t, int64(3), mgr.Sum())
	assert.Equal(t, 1.5, mgr.Mean())
	assert.Same(t, watched, mgr.Last())
	assert.Equal(t, int64(3), mgr.Notifications())
}

func TestModule_FinaliseUnwatches(t *testing.T) {
	ctx := context.Background()
	s := newSimulator(t)

	mc, err := s.CreateInstance(ctx, "CounterManager", "mgr", "", nil)
	require.NoError(t, err)
	cc, err := s.CreateInstance(ctx, "Counter", "c", "", nil)
	require.NoError(t, err)
	c := cc.(*Counter)
	require.NoError(t, mc.(*Manager).Watched().Add(c))
	mc.(*Manager).Watch()
	require.Len(t, c.Changed().Subscribers(), 1)

	require.NoError(t, s.Finalise(ctx))
	assert.Empty(t, c.Changed().Subscribers())
}
