package yaml_adapter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/yaml_adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, kind config.Kind, content string) (*config.Document, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), kind.ManifestFile(".yaml"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return yaml_adapter.NewLoader().Load(context.Background(), path, kind)
}

func TestLoad_Course(t *testing.T) {
	t.Parallel()

	doc, err := load(t, config.KindCourse, `
id: trane::guitar::chords
name: Chords
dependencies:
  - trane::guitar::basic_fretboard
authors: [The Trane Project]
metadata:
  instrument: [guitar]
course_material:
  MarkdownAsset:
    path: material.md
`)

	require.NoError(t, err)
	c := doc.Course
	require.NotNil(t, c)
	assert.Equal(t, "yaml", doc.Format)
	assert.Equal(t, []string{"trane::guitar::basic_fretboard"}, c.Dependencies)
	assert.Equal(t, map[string][]string{"instrument": {"guitar"}}, c.Metadata)
	assert.Equal(t, []string{"material.md"}, c.AssetPaths())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty file", "", "manifest is empty"},
		{"unknown key", "id: a\nname: A\ntitle: A\n", "field title not found"},
		{"bad indentation", "id: a\n  name: A\n", "invalid YAML"},
		{"two documents", "id: a\nname: A\n---\nid: b\n", "single document"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, config.KindCourse, tc.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_Extensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".yaml", ".yml"}, yaml_adapter.NewLoader().Extensions())
}
