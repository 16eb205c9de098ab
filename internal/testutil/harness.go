// Package testutil holds helpers shared by the package and integration tests:
// writing course trees from a map of files and running the application
// against them.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/trane-courses/internal/app"
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

// WriteFiles writes every file of the map below root. Keys are
// slash-separated relative paths; parent directories are created as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// WriteTree writes the files into a fresh temporary directory and returns it.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteFiles(t, root, files)
	return root
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	LogOutput string
	Output    string
	Err       error
	// CoursesPath and OutPath are the directories the run used.
	CoursesPath string
	OutPath     string
}

// RunApp writes files as the course library into a temporary directory and
// runs the given command against it. configure may adjust the config before
// the app is created.
func RunApp(t *testing.T, command string, files map[string]string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	coursesDir := filepath.Join(tmpDir, "courses")
	outDir := filepath.Join(tmpDir, "build")
	require.NoError(t, os.MkdirAll(coursesDir, 0o755))
	WriteFiles(t, coursesDir, files)

	return RunAppAt(t, app.Config{
		Command:      command,
		CoursesPath:  coursesDir,
		OutPath:      outDir,
		LogLevel:     "debug",
		LogFormat:    "text",
		ReportFormat: "text",
	}, configure)
}

// RunAppAt runs the application with the given config.
func RunAppAt(t *testing.T, base app.Config, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	if configure != nil {
		configure(&base)
	}
	cfg, err := app.NewConfig(base)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		runErr = app.NewApp(outBuffer, logBuffer, cfg).Run(context.Background())
	}()

	if os.Getenv("COURSEBUILD_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput:   logBuffer.String(),
		Output:      outBuffer.String(),
		Err:         runErr,
		CoursesPath: cfg.CoursesPath,
		OutPath:     cfg.OutPath,
	}
}
