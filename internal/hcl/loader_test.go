package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_FullModel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.hcl", `
runtime {
  name       = "demo"
  plugin_dir = "./plugins"
  abi        = ">= 1.0.0, < 2.0.0"
}

storage {
  dir         = "checkpoints"
  compression = "zstd"
}

library "counter" {}
`)
	writeFile(t, dir, "models/counters.hcl", `
model "c1" {
  factory     = "Counter"
  description = "first counter"
  fields = {
    count   = 3
    samples = range(4)
  }
}

model "mgr" {
  factory   = "CounterManager"
  container = "Services"
}

connect {
  source = "/Models/c1/changed"
  sink   = "/Services/mgr/onChange"
}

execute = ["/Services/mgr/watch", "/Models/c1/increment"]
`)
	writeFile(t, dir, "README.md", "not configuration")

	model, conv, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, conv)

	assert.Equal(t, "demo", model.Runtime.Name)
	assert.Equal(t, "./plugins", model.Runtime.PluginDir)
	assert.Equal(t, ">= 1.0.0, < 2.0.0", model.Runtime.ABI)
	assert.Equal(t, "checkpoints", model.Storage.Dir)
	assert.Equal(t, "zstd", model.Storage.Compression)

	require.Len(t, model.Libraries, 1)
	assert.Equal(t, "counter", model.Libraries[0].Name)

	require.Len(t, model.Models, 2)
	c1 := model.Models[0]
	assert.Equal(t, "c1", c1.Name)
	assert.Equal(t, "Counter", c1.Factory)
	assert.Equal(t, "first counter", c1.Description)
	assert.Empty(t, c1.Container)
	require.Contains(t, c1.Fields, "count")
	assert.True(t, c1.Fields["count"].Equals(cty.NumberIntVal(3)).True())
	assert.Equal(t, 4, c1.Fields["samples"].LengthInt())

	mgr := model.Models[1]
	assert.Equal(t, "Services", mgr.Container)
	assert.Nil(t, mgr.Fields)

	require.Len(t, model.Connections, 1)
	assert.Equal(t, "/Models/c1/changed", model.Connections[0].Source)
	assert.Equal(t, "/Services/mgr/onChange", model.Connections[0].Sink)
	assert.Equal(t, []string{"/Services/mgr/watch", "/Models/c1/increment"}, model.Execute)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `model "x" {`},
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing factory",
			files:   map[string]string{"a.hcl": `model "x" {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": `step "x" {}`},
			wantErr: "failed to decode HCL file",
		},
		{
			name: "duplicate runtime",
			files: map[string]string{
				"a.hcl": `runtime {}`,
				"b.hcl": `runtime {}`,
			},
			wantErr: "duplicate runtime block",
		},
		{
			name: "duplicate storage",
			files: map[string]string{
				"a.hcl": "storage {}\nstorage {}",
			},
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "fields not an object",
			files:   map[string]string{"a.hcl": `model "x" { factory = "F"` + "\n" + `fields = 3 }`},
			wantErr: "fields must be an object",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}
			_, _, err := NewLoader().Load(context.Background(), dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_Paths(t *testing.T) {
	dir := t.TempDir()
	single := writeFile(t, dir, "one.hcl", `library "a" {}`)
	writeFile(t, dir, "sub/two.hcl", `library "b" {}`)

	t.Run("file and directory are deduplicated", func(t *testing.T) {
		model, _, err := NewLoader().Load(context.Background(), single, dir)
		require.NoError(t, err)
		assert.Len(t, model.Libraries, 2)
		assert.Equal(t, "a", model.Libraries[0].Name)
	})

	t.Run("missing path", func(t *testing.T) {
		_, _, err := NewLoader().Load(context.Background(), filepath.Join(dir, "nope"))
		assert.Error(t, err)
	})

	t.Run("no hcl files", func(t *testing.T) {
		_, _, err := NewLoader().Load(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, ErrNoConfigFiles)
	})
}
