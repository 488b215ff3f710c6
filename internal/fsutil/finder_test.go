package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", "sub/c.hcl", "sub/deeper/d.hcl", ".git/e.hcl"} {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.hcl"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "sub", "c.hcl"),
		filepath.Join(root, "sub", "deeper", "d.hcl"),
	}, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	_, err := FindFilesByExtension(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrEmptyExtension)

	_, err = FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
