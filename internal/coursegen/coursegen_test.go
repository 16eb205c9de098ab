package coursegen_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/trane-courses/internal/coursegen"
	"github.com/specialistvlad/trane-courses/internal/music"
	"github.com/specialistvlad/trane-courses/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	steps := coursegen.Keys()

	var got []string
	for _, s := range steps {
		got = append(got, s.Note.String())
	}
	want := []string{"C", "G", "D", "A", "E", "B", "F♯", "C♯", "F", "B♭", "E♭", "A♭", "D♭", "G♭", "C♭"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, steps[0].Previous)
	require.NotNil(t, steps[1].Previous)
	assert.Equal(t, music.C, *steps[1].Previous, "G follows C")
	require.NotNil(t, steps[8].Previous)
	assert.Equal(t, music.C, *steps[8].Previous, "F starts the counter-clockwise walk from C")
	assert.Equal(t, music.F, *steps[9].Previous)
}

func TestCircleFifthsCourse_CourseBuilder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	type call struct{ note, previous string }
	var calls []call
	gen := coursegen.CircleFifthsCourse{
		DirectoryName: "keys",
		Manifest:      schema.CourseManifest{ID: "keys", Name: "Keys"},
		NoteAlias:     music.Note.RelativeMinor,
		Generator: func(note music.Note, previous *music.Note) (coursegen.LessonBuilder, error) {
			c := call{note: note.String()}
			if previous != nil {
				c.previous = previous.String()
			}
			calls = append(calls, c)
			return coursegen.LessonBuilder{
				DirectoryName: "lesson_" + note.ASCII(),
				Manifest:      schema.LessonManifest{ID: "keys::" + note.ASCII(), CourseID: "keys", Name: note.String()},
			}, nil
		},
	}

	// --- Act ---
	cb, err := gen.CourseBuilder()

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, cb.Lessons, 15)
	assert.Equal(t, call{note: "A"}, calls[0])
	assert.Equal(t, call{note: "E", previous: "A"}, calls[1])
	assert.Equal(t, call{note: "D", previous: "A"}, calls[8])
	for i, l := range cb.Lessons {
		require.NotNil(t, l.Manifest.Order)
		assert.Equal(t, i, *l.Manifest.Order)
	}
}

func TestCircleFifthsCourse_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing generator", func(t *testing.T) {
		t.Parallel()
		_, err := coursegen.CircleFifthsCourse{Manifest: schema.CourseManifest{ID: "keys"}}.CourseBuilder()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no lesson generator")
	})

	t.Run("generator failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		_, err := coursegen.CircleFifthsCourse{
			Generator: func(music.Note, *music.Note) (coursegen.LessonBuilder, error) {
				return coursegen.LessonBuilder{}, boom
			},
		}.CourseBuilder()
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to generate lesson for C")
	})
}

func TestAssetBuilder_RejectsDuplicate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	asset := coursegen.AssetBuilder{FileName: "front.md", Contents: "Front\n"}

	require.NoError(t, asset.Build(dir))
	err := asset.Build(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCourseBuilder_Build(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	order := 0
	cb := &coursegen.CourseBuilder{
		DirectoryName: "chords",
		Manifest:      schema.CourseManifest{ID: "chords", Name: "Chords"},
		Assets:        []coursegen.AssetBuilder{{FileName: "instructions.md", Contents: "Strum.\n"}},
		Lessons: []coursegen.LessonBuilder{{
			DirectoryName: "triads",
			Manifest:      schema.LessonManifest{ID: "chords::triads", CourseID: "chords", Name: "Triads", Order: &order},
			Exercises: []coursegen.ExerciseBuilder{{
				DirectoryName: "c_major",
				Manifest: schema.ExerciseManifest{
					ID:           "chords::triads::c_major",
					LessonID:     "chords::triads",
					CourseID:     "chords",
					Name:         "C major",
					ExerciseType: schema.Procedural,
					ExerciseAsset: schema.ExerciseAsset{
						BasicAsset: &schema.BasicAsset{InlinedAsset: &schema.InlinedAsset{Content: "Play C E G."}},
					},
				},
			}},
		}},
	}
	stale := filepath.Join(root, "chords", "old_lesson")
	require.NoError(t, os.MkdirAll(stale, 0o755))

	// --- Act ---
	err := cb.Build(context.Background(), root)

	// --- Assert ---
	require.NoError(t, err)
	assert.NoDirExists(t, stale, "a regenerated course replaces the previous copy")
	assert.FileExists(t, filepath.Join(root, "chords", "instructions.md"))
	assert.FileExists(t, filepath.Join(root, "chords", "triads", "c_major", "exercise_manifest.json"))

	data, err := os.ReadFile(filepath.Join(root, "chords", "course_manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"chords\",\n  \"name\": \"Chords\",\n  \"dependencies\": []\n}\n", string(data))

	data, err = os.ReadFile(filepath.Join(root, "chords", "triads", "lesson_manifest.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"order": 0`)
}

func TestCourseBuilder_BuildFailureKeepsPreviousCopy(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	previous := filepath.Join(root, "chords", "course_manifest.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(previous), 0o755))
	require.NoError(t, os.WriteFile(previous, []byte("{}"), 0o644))

	cb := &coursegen.CourseBuilder{
		DirectoryName: "chords",
		Manifest:      schema.CourseManifest{ID: "chords", Name: "Chords"},
		Assets: []coursegen.AssetBuilder{
			{FileName: "a.md", Contents: "1"},
			{FileName: "a.md", Contents: "2"},
		},
	}

	// --- Act ---
	err := cb.Build(context.Background(), root)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate course chords")
	data, readErr := os.ReadFile(previous)
	require.NoError(t, readErr)
	assert.Equal(t, "{}", string(data))
}
