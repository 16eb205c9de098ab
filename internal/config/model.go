package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/trane-courses/internal/schema"
)

// Kind is the level of a unit in the Course -> Lesson -> Exercise hierarchy.
type Kind string

const (
	KindCourse   Kind = "course"
	KindLesson   Kind = "lesson"
	KindExercise Kind = "exercise"
)

// Kinds lists every kind, outermost first.
var Kinds = []Kind{KindCourse, KindLesson, KindExercise}

// ManifestBase is the file name of the kind's manifest without extension.
func (k Kind) ManifestBase() string {
	return string(k) + "_manifest"
}

// ManifestFile is the file name of the kind's manifest in the given format
// extension, e.g. "course_manifest.json".
func (k Kind) ManifestFile(ext string) string {
	return k.ManifestBase() + ext
}

// ParseManifestName reports whether a file name is a manifest and, if so, of
// which kind and with which extension. The extension is lowercased.
func ParseManifestName(name string) (Kind, string, bool) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for _, k := range Kinds {
		if base == k.ManifestBase() {
			return k, strings.ToLower(ext), true
		}
	}
	return "", "", false
}

// Model is the unified, format-agnostic representation of everything the
// scanner found below a library root.
type Model struct {
	// Root is the directory that was scanned.
	Root string
	// Documents holds every manifest that decoded, in lexical path order.
	Documents []*Document
	// Files holds every non-manifest regular file, in lexical path order.
	Files []string
	// LoadErrors holds every manifest that could not be decoded.
	LoadErrors []*LoadError
}

// NewModel creates an empty model rooted at root.
func NewModel(root string) *Model {
	return &Model{
		Root:       root,
		Documents:  []*Document{},
		Files:      []string{},
		LoadErrors: []*LoadError{},
	}
}

// Document is a single decoded manifest file.
type Document struct {
	Kind   Kind
	Format string
	// Path is the manifest file path, Dir the unit directory holding it.
	Path string
	Dir  string

	// Exactly one of these is set, matching Kind.
	Course   *schema.CourseManifest
	Lesson   *schema.LessonManifest
	Exercise *schema.ExerciseManifest
}

// NewDocument allocates an empty document of the given kind. Loaders decode
// into the value returned by Target.
func NewDocument(kind Kind, format, path string) *Document {
	d := &Document{
		Kind:   kind,
		Format: format,
		Path:   path,
		Dir:    filepath.Dir(path),
	}
	switch kind {
	case KindCourse:
		d.Course = &schema.CourseManifest{}
	case KindLesson:
		d.Lesson = &schema.LessonManifest{}
	case KindExercise:
		d.Exercise = &schema.ExerciseManifest{}
	default:
		panic(fmt.Sprintf("config: unknown manifest kind %q", kind))
	}
	return d
}

// Target returns a pointer to the manifest struct held by the document.
func (d *Document) Target() any {
	switch d.Kind {
	case KindCourse:
		return d.Course
	case KindLesson:
		return d.Lesson
	default:
		return d.Exercise
	}
}

// ID returns the unit ID declared by the manifest.
func (d *Document) ID() string {
	switch d.Kind {
	case KindCourse:
		return d.Course.ID
	case KindLesson:
		return d.Lesson.ID
	default:
		return d.Exercise.ID
	}
}

// Name returns the display name declared by the manifest.
func (d *Document) Name() string {
	switch d.Kind {
	case KindCourse:
		return d.Course.Name
	case KindLesson:
		return d.Lesson.Name
	default:
		return d.Exercise.Name
	}
}

// Order returns the explicit ordering index declared by the manifest, if any.
func (d *Document) Order() *int {
	switch d.Kind {
	case KindCourse:
		return d.Course.Order
	case KindLesson:
		return d.Lesson.Order
	default:
		return d.Exercise.Order
	}
}

// AssetPaths lists the files referenced by the manifest, relative to Dir.
func (d *Document) AssetPaths() []string {
	switch d.Kind {
	case KindCourse:
		return d.Course.AssetPaths()
	case KindLesson:
		return d.Lesson.AssetPaths()
	default:
		return d.Exercise.AssetPaths()
	}
}

// Label identifies the unit in reports: its ID, or its directory name when
// the ID is missing.
func (d *Document) Label() string {
	if id := d.ID(); id != "" {
		return fmt.Sprintf("%s %s", d.Kind, id)
	}
	return fmt.Sprintf("%s in %s", d.Kind, filepath.Base(d.Dir))
}

// LoadError records a manifest file that could not be decoded.
type LoadError struct {
	Path string
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s manifest %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
