package hcl_adapter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/hcl_adapter"
	"github.com/specialistvlad/trane-courses/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// load writes content as the manifest of kind inside a directory named dir.
func load(t *testing.T, dir string, kind config.Kind, content string) (*config.Document, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), dir, kind.ManifestFile(".hcl"))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return hcl_adapter.NewLoader().Load(context.Background(), path, kind)
}

func TestLoad_Course(t *testing.T) {
	t.Parallel()

	doc, err := load(t, "chords", config.KindCourse, `
id           = "trane::guitar::${dir}"
name         = title(dir)
dependencies = ["trane::guitar::basic_fretboard"]
authors      = ["The Trane Project"]
order        = 3

metadata = {
  instrument = "guitar"
  skill      = ["music", "theory"]
}

course_instructions {
  markdown = "instructions.md"
}
`)

	require.NoError(t, err)
	c := doc.Course
	require.NotNil(t, c)
	assert.Equal(t, "hcl", doc.Format)
	assert.Equal(t, "trane::guitar::chords", c.ID)
	assert.Equal(t, "Chords", c.Name)
	assert.Equal(t, map[string][]string{
		"instrument": {"guitar"},
		"skill":      {"music", "theory"},
	}, c.Metadata)
	require.NotNil(t, c.Order)
	assert.Equal(t, 3, *c.Order)
	assert.Equal(t, []string{"instructions.md"}, c.AssetPaths())
	assert.Nil(t, c.CourseMaterial)
}

func TestLoad_Exercise(t *testing.T) {
	t.Parallel()

	doc, err := load(t, "c", config.KindExercise, `
id            = join("::", ["guitar", "a", dir])
lesson_id     = "guitar::a"
course_id     = "guitar"
name          = format("Find %s on the %s string", upper(dir), "A")
exercise_type = "Declarative"

flashcard {
  front = "front.md"
  back  = "back.md"
}
`)

	require.NoError(t, err)
	e := doc.Exercise
	require.NotNil(t, e)
	assert.Equal(t, "guitar::a::c", e.ID)
	assert.Equal(t, "Find C on the A string", e.Name)
	assert.Equal(t, schema.Declarative, e.ExerciseType)
	assert.Equal(t, &schema.FlashcardAsset{FrontPath: "front.md", BackPath: "back.md"}, e.ExerciseAsset.FlashcardAsset)
	assert.Nil(t, e.ExerciseAsset.SoundSliceAsset)
}

func TestLoad_LessonAssets(t *testing.T) {
	t.Parallel()

	doc, err := load(t, "a", config.KindLesson, `
id        = "guitar::a"
course_id = "guitar"
name      = "A"

lesson_material {
  inlined = trimspace("  Start slowly.  ")
}
`)

	require.NoError(t, err)
	l := doc.Lesson
	require.NotNil(t, l.LessonMaterial)
	require.NotNil(t, l.LessonMaterial.InlinedAsset)
	assert.Equal(t, "Start slowly.", l.LessonMaterial.InlinedAsset.Content)
	assert.Nil(t, l.Metadata)
	assert.Empty(t, l.AssetPaths())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", `id = `, "failed to parse HCL"},
		{"unknown attribute", "id = \"a\"\ncolour = \"red\"\n", "failed to decode HCL"},
		{"unknown function", `id = shout("a")`, "failed to decode HCL"},
		{"bad metadata", "id = \"a\"\nmetadata = \"guitar\"\n", "invalid metadata"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load(t, "x", config.KindCourse, tc.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
