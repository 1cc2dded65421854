package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/imagineer/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Stdout    []byte
	Err       error
	// Dir is the temporary directory the files were written to.
	Dir string
}

// Path resolves a name inside the harness directory.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// RunApp writes files into a fresh temporary directory, rewrites the
// configured paths to point into it, and runs the app once with stdin as
// its standard input. Logs are captured at debug level.
func RunApp(t *testing.T, cfg app.Config, files map[string][]byte, stdin []byte) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, cfg, files, stdin)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, cfg app.Config, files map[string][]byte, stdin []byte) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}

	inDir := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	cfg.InputPath = inDir(cfg.InputPath)
	cfg.OutputPath = inDir(cfg.OutputPath)
	cfg.ScriptFile = inDir(cfg.ScriptFile)
	cfg.RecipePath = inDir(cfg.RecipePath)
	cfg.LogLevel = "debug"

	result := &HarnessResult{Dir: dir}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = fmt.Errorf("invalid configuration: %w", err)
		return result
	}

	logBuffer := &SafeBuffer{}
	var stdout bytes.Buffer
	testApp := app.NewApp(app.Streams{In: bytes.NewReader(stdin), Out: &stdout, Log: logBuffer}, validated)
	result.Err = testApp.Run(ctx)

	if os.Getenv("IMAGINEER_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.LogOutput = logBuffer.String()
	result.Stdout = stdout.Bytes()
	return result
}
