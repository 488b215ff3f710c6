package codec

import (
	"testing"

	"github.com/specialistvlad/simcore/internal/object"
	"github.com/specialistvlad/simcore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	paths map[string]object.Object
}

func (g *fakeGraph) PathOf(obj object.Object) string {
	for p, o := range g.paths {
		if o == obj {
			return p
		}
	}
	return ""
}

func (g *fakeGraph) ResolveAbsolute(p string) object.Object {
	return g.paths[p]
}

type other struct{ *object.Base }

func TestRef_RoundTrip(t *testing.T) {
	target := object.MustNew("target", "", nil)
	g := &fakeGraph{paths: map[string]object.Object{"/Models/target": target}}
	rule := Ref[*object.Base](g)

	buf := storage.NewBuffer(nil)
	e := NewEncoder(buf)
	require.NoError(t, rule.Store(e, target))
	require.NoError(t, rule.Store(e, nil))

	d := NewDecoder(buf)
	var got, gotNil *object.Base
	require.NoError(t, rule.Restore(d, &got))
	require.NoError(t, rule.Restore(d, &gotNil))

	assert.Same(t, target, got)
	assert.Nil(t, gotNil)
	assert.Empty(t, d.Unresolved())
}

func TestRef_UnresolvedPathIsAbsent(t *testing.T) {
	target := object.MustNew("target", "", nil)
	g := &fakeGraph{paths: map[string]object.Object{"/Models/target": target}}

	buf := storage.NewBuffer(nil)
	require.NoError(t, Ref[object.Object](g).Store(NewEncoder(buf), target))

	// The restoring graph no longer has the node.
	restoring := &fakeGraph{paths: map[string]object.Object{}}
	d := NewDecoder(buf)
	var got object.Object = object.MustNew("stale", "", nil)
	require.NoError(t, Ref[object.Object](restoring).Restore(d, &got))

	assert.Nil(t, got)
	assert.Equal(t, []string{"/Models/target"}, d.Unresolved())
}

func TestRef_WrongTypeIsAbsent(t *testing.T) {
	target := object.MustNew("target", "", nil)
	g := &fakeGraph{paths: map[string]object.Object{"/x": target}}

	buf := storage.NewBuffer(nil)
	require.NoError(t, Ref[object.Object](g).Store(NewEncoder(buf), target))

	d := NewDecoder(buf)
	var got *other
	require.NoError(t, Ref[*other](g).Restore(d, &got))
	assert.Nil(t, got)
	assert.Equal(t, []string{"/x"}, d.Unresolved())
}

func TestRef_NoGraph(t *testing.T) {
	target := object.MustNew("target", "", nil)
	buf := storage.NewBuffer(nil)

	e := NewEncoder(buf)
	assert.ErrorIs(t, Ref[*object.Base](e.Graph()).Store(e, target), ErrCannotStore)
	assert.Empty(t, buf.Bytes())

	d := NewDecoder(storage.NewBuffer([]byte{0, 0, 0, 0, 0, 0, 0, 0}))
	got := target
	assert.ErrorIs(t, Ref[*object.Base](d.Graph()).Restore(d, &got), ErrCannotRestore)
}
