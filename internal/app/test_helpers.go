package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/simcore/internal/hcl"
	"github.com/specialistvlad/simcore/internal/plugin"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest writes hclContent to a temporary main.hcl and creates an app
// for it with debug logging. The returned buffers hold the dump output and
// the logs.
func SetupAppTest(t *testing.T, hclContent string, cfg Config, modules map[string]plugin.Module) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.hcl"), []byte(hclContent), 0o600); err != nil {
		t.Fatalf("writing configuration: %v", err)
	}
	cfg.ConfigPath = dir
	cfg.LogLevel = "debug"

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	testApp, err := NewApp(out, logs, &cfg, hcl.NewLoader(), modules)
	if err != nil {
		t.Fatalf("creating app: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("SIMCORE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs
}
