package integration_tests

import (
	"testing"

	"github.com/specialistvlad/trane-courses/internal/app"
	"github.com/specialistvlad/trane-courses/internal/builder"
	"github.com/specialistvlad/trane-courses/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_FailedBuild_KeepsPreviousOutput breaks a library after a
// successful build and checks that the earlier output survives.
func TestErrorHandling_FailedBuild_KeepsPreviousOutput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := testutil.RunApp(t, app.CommandBuild, testutil.WellFormedLibrary(), nil)
	require.NoError(t, first.Err)
	before := testutil.SnapshotDir(t, first.OutPath)

	testutil.WriteFiles(t, first.CoursesPath, map[string]string{
		"02_scales/01_major/lesson_manifest.json": testutil.LessonJSON(testutil.MajorLesson, "music::wrong", "Major Scale"),
	})

	// --- Act ---
	second := testutil.RunAppAt(t, app.Config{
		CoursesPath:  first.CoursesPath,
		OutPath:      first.OutPath,
		LogFormat:    "text",
		LogLevel:     "info",
		ReportFormat: "text",
	}, nil)

	// --- Assert ---
	violations := testutil.RequireViolations(t, second.Err)
	testutil.AssertViolation(t, violations, "02_scales/01_major/lesson_manifest.json", builder.ConstraintParentMismatch)
	assert.Equal(t, before, testutil.SnapshotDir(t, first.OutPath))
	assert.NotContains(t, second.Output, "Built course library")
}

// TestErrorHandling_ReportsViolationsFromEveryFormat checks that one run
// surfaces the problems of JSON, YAML and HCL manifests together.
func TestErrorHandling_ReportsViolationsFromEveryFormat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"guitar/course_manifest.json":   `{"id": "guitar", "name": ""}`,
		"guitar/a/lesson_manifest.yaml": "id: guitar::a\ncourse_id: guitar\nname: A\ndependencies: [guitar::b]\n",
		"guitar/b/lesson_manifest.hcl":  "id = \"guitar::b\"\ncourse_id = \"guitar\"\nname = \"B\"\ndependencies = [\"guitar::a\"]\n",
		"guitar/b/stray/exercise_manifest.hcl": `
id            = "guitar::b::stray"
lesson_id     = "guitar::b"
course_id     = "guitar"
name          = "Stray"
exercise_type = "Declarative"
asset {
  markdown = "missing.md"
}
`,
		"piano/01_x/exercise_manifest.json": testutil.ExerciseJSON("piano::x", "piano::l", "piano", "X"),
	}

	// --- Act ---
	result := testutil.RunApp(t, app.CommandBuild, files, func(c *app.Config) {
		c.ReportFormat = "json"
	})

	// --- Assert ---
	violations := testutil.RequireViolations(t, result.Err)
	testutil.AssertViolation(t, violations, "guitar/course_manifest.json", "notblank")
	testutil.AssertViolation(t, violations, "guitar/b/stray/exercise_manifest.hcl", builder.ConstraintMissingAsset)
	testutil.AssertViolation(t, violations, "piano/01_x/exercise_manifest.json", builder.ConstraintExerciseOutsideLesson)
	cycle := testutil.AssertViolation(t, violations, "guitar/a/lesson_manifest.yaml", builder.ConstraintDependencyCycle)
	assert.Equal(t, "dependency cycle: guitar::a -> guitar::b -> guitar::a", cycle.Message)

	assert.Contains(t, result.Output, `"status": "failed"`)
	assert.NoDirExists(t, result.OutPath)
}
