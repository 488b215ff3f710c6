package component

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/specialistvlad/simcore/internal/codec"
	"github.com/specialistvlad/simcore/internal/collection"
	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/simple"
	"github.com/specialistvlad/simcore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUUID = uuid.MustParse("6f1b7d4e-3c61-4c1e-9f0a-2d7e5b8c9a01")

type widget struct {
	*Base
	CompositeFacet
	AggregateFacet
	ConsumerFacet
	ProviderFacet
	PublisherFacet
	FallibleFacet
	FieldFacet
}

type gadget struct{ *Base }

func newWidget(t *testing.T, name string, parent object.Object) *widget {
	t.Helper()
	b, err := NewBase(name, "test widget", parent, testUUID)
	require.NoError(t, err)
	return &widget{Base: b}
}

func newGadget(t *testing.T, name string) *gadget {
	t.Helper()
	b, err := NewBase(name, "", nil, uuid.New())
	require.NoError(t, err)
	return &gadget{Base: b}
}

var (
	_ Composite           = (*widget)(nil)
	_ Aggregate           = (*widget)(nil)
	_ EventConsumer       = (*widget)(nil)
	_ EventProvider       = (*widget)(nil)
	_ EntryPointPublisher = (*widget)(nil)
	_ Fallible            = (*widget)(nil)
	_ FieldHolder         = (*widget)(nil)
	_ FieldHolder         = (*StructureField)(nil)
	_ IndexedField        = (*ArrayField[int32])(nil)
	_ ValueField          = (*SimpleField[int32])(nil)
)

func TestNewBase_InvalidName(t *testing.T) {
	_, err := NewBase("0bad", "", nil, testUUID)
	assert.ErrorIs(t, err, object.ErrInvalidObjectName)
}

func TestFacets_ZeroValue(t *testing.T) {
	w := newWidget(t, "w", nil)

	assert.Empty(t, w.Containers())
	assert.Nil(t, w.Container("x"))
	assert.Nil(t, w.Reference(""))
	assert.Nil(t, w.EventSink("x"))
	assert.Nil(t, w.EventSource("x"))
	assert.Nil(t, w.EntryPoint("x"))
	assert.Nil(t, w.Failure("x"))
	assert.Nil(t, w.Field("x"))
	assert.False(t, w.IsFailed())
	assert.Equal(t, testUUID, w.Uuid())
}

func TestFacets_AddAndDuplicate(t *testing.T) {
	w := newWidget(t, "w", nil)
	c, err := NewContainer("children", "", w)
	require.NoError(t, err)

	require.NoError(t, w.AddContainer(c))
	assert.Same(t, c, w.Container("children"))
	assert.Equal(t, []*Container{c}, w.Containers())

	dup, err := NewContainer("children", "", w)
	require.NoError(t, err)
	assert.ErrorIs(t, w.AddContainer(dup), collection.ErrDuplicateName)
	assert.Len(t, w.Containers(), 1)
}

func TestFacets_NameTakenAcrossFacets(t *testing.T) {
	w := newWidget(t, "w", nil)
	ref, err := NewReference("peers", "", w)
	require.NoError(t, err)
	require.NoError(t, w.AddReference(ref))

	field, err := NewField("peers", "", w, codec.Int64, true)
	require.NoError(t, err)
	err = w.AddField(field)
	assert.ErrorIs(t, err, collection.ErrDuplicateName)
	var dupErr *collection.DuplicateNameError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "fields", dupErr.Collection)
	assert.Nil(t, w.Field("peers"))

	ep, err := NewEntryPoint("peers", "", w, func() {})
	require.NoError(t, err)
	assert.ErrorIs(t, w.AddEntryPoint(ep), collection.ErrDuplicateName)

	// Elements of another owner do not collide.
	other := newWidget(t, "other", nil)
	f2, err := NewField("peers", "", other, codec.Int64, true)
	require.NoError(t, err)
	assert.NoError(t, other.AddField(f2))
}

func TestContainer_Bounds(t *testing.T) {
	parent := newWidget(t, "p", nil)
	c, err := NewContainer("slots", "", parent, WithBounds(0, 2))
	require.NoError(t, err)

	require.NoError(t, c.Add(newWidget(t, "a", c)))
	require.NoError(t, c.Add(newWidget(t, "b", c)))
	err = c.Add(newWidget(t, "c", c))
	assert.ErrorIs(t, err, ErrContainerFull)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 0, c.Lower())
	assert.Equal(t, 2, c.Upper())
	assert.Equal(t, "b", c.At(1).Name())
	assert.Nil(t, c.At(2))
	assert.Nil(t, c.Get("c"))
	assert.Equal(t, 1, c.IndexOf("b"))
}

func TestContainer_Type(t *testing.T) {
	c, err := NewContainer("widgets", "", nil, OfType[*widget]())
	require.NoError(t, err)
	assert.Equal(t, Unbounded, c.Upper())

	require.NoError(t, c.Add(newWidget(t, "w", c)))
	err = c.Add(newGadget(t, "g"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidObjectType)
	assert.Contains(t, err.Error(), "*component.widget")
}

func TestReference_Bounds(t *testing.T) {
	r, err := NewReference("peer", "", nil, WithBounds(1, 1))
	require.NoError(t, err)

	target := newWidget(t, "t", nil)
	require.NoError(t, r.Add(target))
	assert.ErrorIs(t, r.Add(newWidget(t, "u", nil)), ErrReferenceFull)
	assert.Same(t, target, r.Get("t"))
	assert.Nil(t, target.Parent(), "a reference does not become the parent")
}

func TestEvents(t *testing.T) {
	owner := newWidget(t, "owner", nil)
	source, err := NewEventSource("changed", "", owner, simple.Int64)
	require.NoError(t, err)

	var got []int64
	var senders []object.Object
	sink, err := NewEventSink("onChanged", "", owner, simple.Int64, func(sender object.Object, arg simple.Value) {
		v, _ := simple.As[int64](arg)
		got = append(got, v)
		senders = append(senders, sender)
	})
	require.NoError(t, err)
	voidSink, err := NewVoidEventSink("onTick", "", owner, func(object.Object) {})
	require.NoError(t, err)

	t.Run("subscribe", func(t *testing.T) {
		require.NoError(t, source.Subscribe(sink))
		assert.ErrorIs(t, source.Subscribe(sink), ErrEventSinkAlreadySubscribed)
		assert.ErrorIs(t, source.Subscribe(voidSink), ErrInvalidEventSink)
		assert.ErrorIs(t, source.Subscribe(nil), ErrInvalidEventSink)
		assert.Equal(t, []*EventSink{sink}, source.Subscribers())
	})

	t.Run("emit", func(t *testing.T) {
		require.NoError(t, source.Emit(simple.OfInt64(5)))
		assert.Equal(t, []int64{5}, got)
		assert.Equal(t, []object.Object{owner}, senders)

		assert.ErrorIs(t, source.Emit(simple.OfString8("x")), simple.ErrInvalidAnyType)
		assert.Len(t, got, 1)
	})

	t.Run("notify type mismatch", func(t *testing.T) {
		err := sink.Notify(owner, simple.OfFloat64(1))
		var typeErr *simple.InvalidAnyTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, simple.Int64, typeErr.Expected)
		assert.Equal(t, simple.Float64, typeErr.Actual)

		assert.NoError(t, voidSink.Notify(owner, simple.Void()))
		assert.ErrorIs(t, voidSink.Notify(owner, simple.OfBool(true)), simple.ErrInvalidAnyType)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		require.NoError(t, source.Unsubscribe(sink))
		assert.ErrorIs(t, source.Unsubscribe(sink), ErrEventSinkNotSubscribed)
		assert.ErrorIs(t, source.Unsubscribe(nil), ErrEventSinkNotSubscribed)
		require.NoError(t, source.Emit(simple.OfInt64(6)))
		assert.Equal(t, []int64{5}, got)
	})
}

func TestSafeExecute(t *testing.T) {
	owner := newWidget(t, "owner", nil)
	calls := 0
	ok, err := NewEntryPoint("step", "", owner, func() { calls++ })
	require.NoError(t, err)
	bad, err := NewEntryPoint("boom", "", owner, func() { panic("kaput") })
	require.NoError(t, err)

	require.NoError(t, SafeExecute(context.Background(), ok))
	assert.Equal(t, 1, calls)

	err = SafeExecute(context.Background(), bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutionFailed)
	assert.Contains(t, err.Error(), "kaput")

	assert.Panics(t, bad.Execute)
}

func TestFailures(t *testing.T) {
	w := newWidget(t, "w", nil)
	f, err := NewFailure("overheat", "", w)
	require.NoError(t, err)
	require.NoError(t, w.AddFailure(f))

	f.Fail()
	assert.True(t, w.IsFailed())

	buf := storage.NewBuffer(nil)
	require.NoError(t, f.Store(codec.NewEncoder(buf)))
	f.Unfail()
	assert.False(t, w.IsFailed())

	require.NoError(t, f.Restore(codec.NewDecoder(buf)))
	assert.True(t, f.IsFailed())
}

func TestFields(t *testing.T) {
	w := newWidget(t, "w", nil)

	count, err := NewField("count", "", w, codec.Int64, true)
	require.NoError(t, err)
	arr, err := NewArrayField("samples", "", w, 3, codec.Float64, true)
	require.NoError(t, err)
	st, err := NewStructureField("pos", "", w, true)
	require.NoError(t, err)
	x, err := NewField("x", "", st, codec.Int32, true)
	require.NoError(t, err)
	require.NoError(t, st.AddField(x))

	for _, f := range []Field{count, arr, st} {
		require.NoError(t, w.AddField(f))
	}

	count.Set(4)
	require.NoError(t, arr.SetValues([]float64{1, 2, 3}))
	assert.Error(t, arr.SetValues([]float64{1, 2, 3, 4}))
	x.Set(-7)

	assert.Equal(t, "[2]", arr.Item(2).Name())
	assert.Same(t, arr, arr.Item(2).Parent())
	assert.Nil(t, arr.Item(3))
	assert.Same(t, x, st.Field("x"))

	buf := storage.NewBuffer(nil)
	e := codec.NewEncoder(buf)
	for _, f := range w.Fields() {
		require.NoError(t, f.Store(e))
	}

	count.Set(0)
	require.NoError(t, arr.SetValues([]float64{0, 0, 0}))
	x.Set(0)

	d := codec.NewDecoder(buf)
	for _, f := range w.Fields() {
		require.NoError(t, f.Restore(d))
	}
	assert.Equal(t, int64(4), count.Get())
	assert.Equal(t, []float64{1, 2, 3}, arr.Values())
	assert.Equal(t, int32(-7), x.Get())

	assert.Equal(t, int64(4), count.Value())
	*(count.Target().(*int64)) = 9
	assert.Equal(t, int64(9), count.Get())
}
