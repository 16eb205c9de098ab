package builder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// Constraint names the rule a Violation breaks. Field-level violations use
// the validator tag (e.g. "required", "unit_id") as their constraint.
type Constraint string

const (
	ConstraintDecode                Constraint = "decode"
	ConstraintDuplicateManifest     Constraint = "duplicate_manifest"
	ConstraintMisplacedManifest     Constraint = "misplaced_manifest"
	ConstraintNestedCourse          Constraint = "nested_course"
	ConstraintLessonOutsideCourse   Constraint = "lesson_outside_course"
	ConstraintExerciseOutsideLesson Constraint = "exercise_outside_lesson"
	ConstraintParentMismatch        Constraint = "parent_mismatch"
	ConstraintDuplicateID           Constraint = "duplicate_id"
	ConstraintInvalidOrder          Constraint = "invalid_order"
	ConstraintOrderConflict         Constraint = "order_conflict"
	ConstraintDuplicateOrder        Constraint = "duplicate_order"
	ConstraintMissingAsset          Constraint = "missing_asset"
	ConstraintAssetOutsideUnit      Constraint = "asset_outside_unit"
	ConstraintManifestAsset         Constraint = "manifest_asset"
	ConstraintDanglingReference     Constraint = "dangling_reference"
	ConstraintSelfDependency        Constraint = "self_dependency"
	ConstraintDependencyCycle       Constraint = "dependency_cycle"

	// ConstraintUnreferencedFile is only ever reported as a warning.
	ConstraintUnreferencedFile Constraint = "unreferenced_file"
)

// Violation is a single problem found in the course library.
type Violation struct {
	// Path is the offending file or directory, slash-separated and relative to
	// the library root.
	Path string `json:"path"`
	// Entity identifies the unit, e.g. "lesson trane::guitar::scales::c".
	Entity     string     `json:"entity"`
	Constraint Constraint `json:"constraint"`
	Message    string     `json:"message"`
}

// String renders the violation as a single report line.
func (v Violation) String() string {
	if v.Entity == "" {
		return fmt.Sprintf("%s: %s [%s]", v.Path, v.Message, v.Constraint)
	}
	return fmt.Sprintf("%s: %s: %s [%s]", v.Path, v.Entity, v.Message, v.Constraint)
}

// SortViolations orders violations by path, constraint and message.
func SortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Path != vs[j].Path {
			return vs[i].Path < vs[j].Path
		}
		if vs[i].Constraint != vs[j].Constraint {
			return vs[i].Constraint < vs[j].Constraint
		}
		return vs[i].Message < vs[j].Message
	})
}

// ValidationError is returned by Build when the library has at least one
// violation. It carries every violation found, not just the first.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	return fmt.Sprintf("course library validation failed with %d violation(s):\n- %s",
		len(e.Violations), strings.Join(lines, "\n- "))
}

// Options tunes the checks performed by the builder.
type Options struct {
	// AllowExternalDependencies accepts course dependencies on IDs that are
	// not part of this library, e.g. courses published elsewhere.
	AllowExternalDependencies bool
}

// Course is a validated course with its lessons in canonical order.
type Course struct {
	Doc      *config.Document
	Manifest *schema.CourseManifest
	// Dir is the course directory relative to the library root, slash-separated.
	Dir     string
	Index   *int
	Lessons []*Lesson
}

// Lesson is a validated lesson with its exercises in canonical order.
type Lesson struct {
	Doc       *config.Document
	Manifest  *schema.LessonManifest
	Dir       string
	Index     *int
	Course    *Course
	Exercises []*Exercise
}

// Exercise is a validated exercise.
type Exercise struct {
	Doc      *config.Document
	Manifest *schema.ExerciseManifest
	Dir      string
	Index    *int
	Lesson   *Lesson
}

// Result is the outcome of a successful build.
type Result struct {
	// Root is the library root that was built.
	Root string
	// Courses holds every course in canonical order.
	Courses []*Course
	// Library is the index written to manifest.json.
	Library *Library
	// Warnings lists non-fatal findings, sorted.
	Warnings []Violation
}

// FormatVersion is the version of the manifest.json index layout.
const FormatVersion = 1

// Library is the index of a built course library.
type Library struct {
	FormatVersion int           `json:"format_version"`
	Courses       []CourseEntry `json:"courses"`
	Counts        Counts        `json:"counts"`
}

// CourseEntry is a course in the library index.
type CourseEntry struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Path         string        `json:"path"`
	Order        *int          `json:"order,omitempty"`
	Dependencies []string      `json:"dependencies"`
	Lessons      []LessonEntry `json:"lessons"`
}

// LessonEntry is a lesson in the library index.
type LessonEntry struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	Order        *int            `json:"order,omitempty"`
	Dependencies []string        `json:"dependencies"`
	Exercises    []ExerciseEntry `json:"exercises"`
}

// ExerciseEntry is an exercise in the library index.
type ExerciseEntry struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Path         string              `json:"path"`
	Order        *int                `json:"order,omitempty"`
	ExerciseType schema.ExerciseType `json:"exercise_type"`
}

// Counts totals the units in the library.
type Counts struct {
	Courses   int `json:"courses"`
	Lessons   int `json:"lessons"`
	Exercises int `json:"exercises"`
}
