package schema_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/trane-courses/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExercise() schema.ExerciseManifest {
	return schema.ExerciseManifest{
		ID:           "guitar::a::c",
		LessonID:     "guitar::a",
		CourseID:     "guitar",
		Name:         "Find C",
		ExerciseType: schema.Declarative,
		ExerciseAsset: schema.ExerciseAsset{
			FlashcardAsset: &schema.FlashcardAsset{FrontPath: "front.md", BackPath: "back.md"},
		},
	}
}

// failedFields returns "namespace:tag" for every field error in err.
func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs validator.ValidationErrors
	require.True(t, errors.As(err, &fieldErrs), "expected field errors, got %v", err)
	out := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = fe.Namespace() + ":" + fe.Tag()
	}
	return out
}

func TestValidator_AcceptsValidManifests(t *testing.T) {
	t.Parallel()

	v := schema.NewValidator()
	e := validExercise()
	order := 0

	assert.NoError(t, v.Struct(&e))
	assert.NoError(t, v.Struct(&schema.CourseManifest{
		ID:       "guitar",
		Name:     "Guitar",
		Metadata: map[string][]string{"instrument": {"guitar"}},
		CourseMaterial: &schema.BasicAsset{
			MarkdownAsset: &schema.MarkdownAsset{Path: "docs/material.md"},
		},
		Order: &order,
	}))
	assert.NoError(t, v.Struct(&schema.LessonManifest{ID: "guitar::a", CourseID: "guitar", Name: "A"}))
}

func TestValidator_ReportsFieldErrors(t *testing.T) {
	t.Parallel()

	v := schema.NewValidator()
	negative := -1

	testCases := []struct {
		name   string
		mutate func(*schema.ExerciseManifest)
		want   string
	}{
		{"id with space", func(e *schema.ExerciseManifest) { e.ID = "a b" }, "ExerciseManifest.id:unit_id"},
		{"missing lesson", func(e *schema.ExerciseManifest) { e.LessonID = "" }, "ExerciseManifest.lesson_id:required"},
		{"blank name", func(e *schema.ExerciseManifest) { e.Name = "\t" }, "ExerciseManifest.name:notblank"},
		{"bad type", func(e *schema.ExerciseManifest) { e.ExerciseType = "Spoken" }, "ExerciseManifest.exercise_type:oneof"},
		{"negative order", func(e *schema.ExerciseManifest) { e.Order = &negative }, "ExerciseManifest.order:min"},
		{"escaping path", func(e *schema.ExerciseManifest) {
			e.ExerciseAsset.FlashcardAsset.FrontPath = "../front.md"
		}, "ExerciseManifest.exercise_asset.FlashcardAsset.front_path:relpath"},
		{"absolute path", func(e *schema.ExerciseManifest) {
			e.ExerciseAsset.FlashcardAsset.BackPath = "/etc/passwd"
		}, "ExerciseManifest.exercise_asset.FlashcardAsset.back_path:relpath"},
		{"no asset", func(e *schema.ExerciseManifest) {
			e.ExerciseAsset = schema.ExerciseAsset{}
		}, "ExerciseManifest.exercise_asset.variant:" + schema.TagOneVariant},
		{"two assets", func(e *schema.ExerciseManifest) {
			e.ExerciseAsset.SoundSliceAsset = &schema.SoundSliceAsset{Link: "https://www.soundslice.com/slices/x/"}
		}, "ExerciseManifest.exercise_asset.variant:" + schema.TagOneVariant},
		{"bad link", func(e *schema.ExerciseManifest) {
			e.ExerciseAsset = schema.ExerciseAsset{SoundSliceAsset: &schema.SoundSliceAsset{Link: "not a url"}}
		}, "ExerciseManifest.exercise_asset.SoundSliceAsset.link:url"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			e := validExercise()
			tc.mutate(&e)
			assert.Contains(t, failedFields(t, v.Struct(&e)), tc.want)
		})
	}
}

func TestValidator_BasicAssetVariants(t *testing.T) {
	t.Parallel()

	v := schema.NewValidator()
	course := schema.CourseManifest{
		ID:                 "guitar",
		Name:               "Guitar",
		CourseInstructions: &schema.BasicAsset{},
	}

	assert.Contains(t, failedFields(t, v.Struct(&course)), "CourseManifest.course_instructions.variant:"+schema.TagOneVariant)
}

func TestAssetPaths(t *testing.T) {
	t.Parallel()

	course := schema.CourseManifest{
		CourseMaterial:     &schema.BasicAsset{MarkdownAsset: &schema.MarkdownAsset{Path: "material.md"}},
		CourseInstructions: &schema.BasicAsset{InlinedAsset: &schema.InlinedAsset{Content: "hi"}},
	}
	assert.Equal(t, []string{"material.md"}, course.AssetPaths())

	e := validExercise()
	assert.Equal(t, []string{"front.md", "back.md"}, e.AssetPaths())

	e.ExerciseAsset = schema.ExerciseAsset{SoundSliceAsset: &schema.SoundSliceAsset{Link: "https://x.y", Backup: "backup.mp3"}}
	assert.Equal(t, []string{"backup.mp3"}, e.AssetPaths())

	assert.Empty(t, (&schema.LessonManifest{}).AssetPaths())
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	lesson := schema.LessonManifest{ID: "guitar::a", CourseID: "guitar", Name: "A <b>"}
	lesson.Normalize()

	data, err := schema.EncodeJSON(&lesson)

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"id\": \"guitar::a\",\n  \"course_id\": \"guitar\",\n  \"name\": \"A <b>\",\n  \"dependencies\": []\n}\n", string(data))
}
