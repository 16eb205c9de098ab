package fsutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/trane-courses/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, fsutil.WriteFile(path, []byte(content)))
}

func TestFindFiles_SkipsHidden(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "course_manifest.json"), "{}")
	writeFile(t, filepath.Join(root, "a.md"), "a")
	writeFile(t, filepath.Join(root, ".DS_Store"), "")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")

	// --- Act ---
	files, err := fsutil.FindFiles(root)
	jsonFiles, extErr := fsutil.FindFilesByExtension(root, ".json")

	// --- Assert ---
	require.NoError(t, err)
	require.NoError(t, extErr)
	assert.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "b", "course_manifest.json"),
	}, files)
	assert.Equal(t, []string{filepath.Join(root, "b", "course_manifest.json")}, jsonFiles)
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path, dir string
		want      bool
	}{
		{"courses", "courses", true},
		{"courses/build", "courses", true},
		{"courses/../build", "courses", false},
		{"courses-old", "courses", false},
		{"build", "courses", false},
	}
	for _, tc := range testCases {
		got, err := fsutil.IsWithin(tc.path, tc.dir)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "IsWithin(%q, %q)", tc.path, tc.dir)
	}
}

func TestReplaceDir(t *testing.T) {
	t.Parallel()

	t.Run("creates the target", func(t *testing.T) {
		t.Parallel()
		target := filepath.Join(t.TempDir(), "out", "build")

		err := fsutil.ReplaceDir(target, func(staging string) error {
			return fsutil.WriteFile(filepath.Join(staging, "index.json"), []byte("{}"))
		})

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(target, "index.json"))
	})

	t.Run("replaces existing contents", func(t *testing.T) {
		t.Parallel()
		parent := t.TempDir()
		target := filepath.Join(parent, "build")
		writeFile(t, filepath.Join(target, "stale.json"), "old")

		err := fsutil.ReplaceDir(target, func(staging string) error {
			return fsutil.WriteFile(filepath.Join(staging, "fresh.json"), []byte("new"))
		})

		require.NoError(t, err)
		assert.NoFileExists(t, filepath.Join(target, "stale.json"))
		assert.FileExists(t, filepath.Join(target, "fresh.json"))
		entries, err := os.ReadDir(parent)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("failure leaves the target untouched", func(t *testing.T) {
		t.Parallel()
		parent := t.TempDir()
		target := filepath.Join(parent, "build")
		writeFile(t, filepath.Join(target, "keep.json"), "old")
		boom := errors.New("boom")

		err := fsutil.ReplaceDir(target, func(staging string) error {
			if err := fsutil.WriteFile(filepath.Join(staging, "partial.json"), []byte("x")); err != nil {
				return err
			}
			return boom
		})

		require.ErrorIs(t, err, boom)
		data, readErr := os.ReadFile(filepath.Join(target, "keep.json"))
		require.NoError(t, readErr)
		assert.Equal(t, "old", string(data))
		entries, readErr := os.ReadDir(parent)
		require.NoError(t, readErr)
		assert.Len(t, entries, 1, "the staging directory is removed")
	})

	t.Run("refuses to replace a file", func(t *testing.T) {
		t.Parallel()
		target := filepath.Join(t.TempDir(), "build")
		writeFile(t, target, "not a directory")

		err := fsutil.ReplaceDir(target, func(string) error { return nil })

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
		assert.FileExists(t, target)
	})
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "nested", "dst.md")
	writeFile(t, src, "# Notes\n")

	require.NoError(t, fsutil.CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n", string(data))

	err = fsutil.CopyFile(filepath.Join(dir, "missing.md"), dst)
	require.Error(t, err)
}
