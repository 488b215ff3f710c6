package object

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestValidateName(t *testing.T) {
	valid := []string{"A", "aZZZ___4541", "[4]", "[432]", "z9", "[0]"}
	invalid := []string{"", "0aaa", "_aaa", "[abc]", "[0]a", "[]", "[4][3]", "[432", "[", "[43][", "AZé", "a b", "a-b", "a[1]", " a"}

	for _, name := range valid {
		t.Run("valid "+name, func(t *testing.T) {
			assert.NoError(t, ValidateName(name))
		})
	}
	for _, name := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			err := ValidateName(name)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidObjectName)

			var nameErr *InvalidNameError
			require.True(t, errors.As(err, &nameErr))
			assert.Equal(t, name, nameErr.Name)
			assert.NotEmpty(t, nameErr.Reason)
		})
	}
}

func TestValidateName_Property(t *testing.T) {
	grammar := regexp.MustCompile(`^(?:[A-Za-z][A-Za-z0-9_]*|\[[0-9]+\])$`)

	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.OneOf(
			rapid.String(),
			rapid.StringMatching(`[A-Za-z_0-9\[\]é]{0,8}`),
			rapid.StringMatching(`[A-Za-z][A-Za-z0-9_]{0,6}`),
			rapid.StringMatching(`\[[0-9]{1,4}\]`),
		).Draw(rt, "name")

		err := ValidateName(name)
		if grammar.MatchString(name) {
			if err != nil {
				rt.Fatalf("expected %q to be valid, got %v", name, err)
			}
		} else if err == nil {
			rt.Fatalf("expected %q to be rejected", name)
		}
	})
}

func TestNew(t *testing.T) {
	root, err := New("root", "the root", nil)
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name())
	assert.Equal(t, "the root", root.Description())
	assert.Nil(t, root.Parent())

	child, err := New("child", "", root)
	require.NoError(t, err)
	assert.Same(t, root, child.Parent())

	child.SetDescription("updated")
	assert.Equal(t, "updated", child.Description())

	_, err = New("1bad", "", root)
	assert.ErrorIs(t, err, ErrInvalidObjectName)

	assert.Panics(t, func() { MustNew("", "", nil) })
}

func TestIsIndexName(t *testing.T) {
	assert.True(t, IsIndexName("[0]"))
	assert.True(t, IsIndexName("[12]"))
	assert.False(t, IsIndexName("[]"))
	assert.False(t, IsIndexName("a"))
	assert.False(t, IsIndexName("[1]x"))
}
