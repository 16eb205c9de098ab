package builder

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/library"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// Builder validates a course library and produces its normalized form.
type Builder struct {
	scanner  *library.Scanner
	validate *validator.Validate
	opts     Options
}

// New creates a builder that reads manifests with the given loaders.
func New(opts Options, loaders ...config.Loader) *Builder {
	return &Builder{
		scanner:  library.NewScanner(loaders...),
		validate: schema.NewValidator(),
		opts:     opts,
	}
}

// Extensions lists the manifest file extensions the builder understands.
func (b *Builder) Extensions() []string {
	return b.scanner.Extensions()
}

// Build scans and validates the library at root. It returns a *ValidationError
// listing every violation when the library is invalid, and a plain error when
// the root cannot be read at all.
func (b *Builder) Build(ctx context.Context, root string) (*Result, error) {
	ctx, logger := ctxlog.With(ctx, "root", root)
	logger.Debug("Build: Starting course library build.")

	model, err := b.scanner.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	t := newTree(model)

	// First pass: claim unit directories and attach manifests to their parents.
	t.recordLoadErrors()
	t.createUnits(ctx)
	logger.Debug("Build: Unit creation complete.",
		"courses", len(t.courseList), "lessons", len(t.lessons), "exercises", len(t.exercises))

	// Second pass: per-manifest and cross-manifest checks.
	t.validateFields(ctx, b.validate)
	t.checkIDs()
	t.checkParents()
	t.checkOrder()
	t.checkAssets()

	// Third pass: dependency references and cycles.
	courseGraph := t.linkUnits(ctx, b.opts)
	logger.Debug("Build: Dependency linking complete.")

	t.checkUnreferencedFiles()
	for _, w := range t.warnings {
		logger.Warn("Build warning.", "path", w.Path, "constraint", w.Constraint, "message", w.Message)
	}

	if len(t.violations) > 0 {
		SortViolations(t.violations)
		logger.Debug("Build: Validation failed.", "violations", len(t.violations))
		return nil, &ValidationError{Violations: t.violations}
	}

	courses, err := t.canonicalOrder(courseGraph)
	if err != nil {
		return nil, fmt.Errorf("error ordering courses: %w", err)
	}

	res := &Result{
		Root:     root,
		Courses:  courses,
		Library:  newLibrary(courses),
		Warnings: t.warnings,
	}
	logger.Info("Build: Course library is valid.",
		"courses", res.Library.Counts.Courses,
		"lessons", res.Library.Counts.Lessons,
		"exercises", res.Library.Counts.Exercises,
		"warnings", len(res.Warnings))
	return res, nil
}

// tree holds the state of one build while the passes run.
type tree struct {
	root  string
	model *config.Model

	// dirKinds maps every directory holding a manifest, decoded or not, to the
	// manifest kind. dirDocs holds only the decoded ones.
	dirKinds map[string]config.Kind
	dirDocs  map[string]*config.Document
	docs     []*config.Document

	courses    map[string]*Course
	courseList []*Course
	lessons    map[string]*Lesson
	exercises  map[string]*Exercise

	// referenced holds every asset file named by a manifest.
	referenced map[string]bool

	violations []Violation
	warnings   []Violation
}

func newTree(model *config.Model) *tree {
	return &tree{
		root:       filepath.Clean(model.Root),
		model:      model,
		dirKinds:   make(map[string]config.Kind),
		dirDocs:    make(map[string]*config.Document),
		courses:    make(map[string]*Course),
		lessons:    make(map[string]*Lesson),
		exercises:  make(map[string]*Exercise),
		referenced: make(map[string]bool),
	}
}

// rel returns path relative to the library root, slash-separated.
func (t *tree) rel(path string) string {
	r, err := filepath.Rel(t.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

func (t *tree) report(path, entity string, c Constraint, format string, args ...any) {
	t.violations = append(t.violations, Violation{
		Path:       t.rel(path),
		Entity:     entity,
		Constraint: c,
		Message:    fmt.Sprintf(format, args...),
	})
}

func (t *tree) warn(path, entity string, c Constraint, format string, args ...any) {
	t.warnings = append(t.warnings, Violation{
		Path:       t.rel(path),
		Entity:     entity,
		Constraint: c,
		Message:    fmt.Sprintf(format, args...),
	})
}

func (t *tree) recordLoadErrors() {
	for _, le := range t.model.LoadErrors {
		t.report(le.Path, string(le.Kind)+" manifest", ConstraintDecode, "%v", le.Err)
	}
}

// checkUnreferencedFiles warns about files inside unit directories that no
// manifest refers to. Files outside every unit are ignored.
func (t *tree) checkUnreferencedFiles() {
	for _, f := range t.model.Files {
		if t.referenced[f] {
			continue
		}
		owner := t.owningDir(filepath.Dir(f))
		if owner == "" {
			continue
		}
		doc, ok := t.dirDocs[owner]
		if !ok {
			continue
		}
		t.warn(f, doc.Label(), ConstraintUnreferencedFile, "file is not referenced by any manifest")
	}
	SortViolations(t.warnings)
}

// owningDir returns the closest directory at or above dir that holds a
// manifest, or "" when there is none below the root.
func (t *tree) owningDir(dir string) string {
	for {
		if _, ok := t.dirKinds[dir]; ok {
			return dir
		}
		if dir == t.root {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func newLibrary(courses []*Course) *Library {
	lib := &Library{
		FormatVersion: FormatVersion,
		Courses:       make([]CourseEntry, 0, len(courses)),
	}
	for _, c := range courses {
		ce := CourseEntry{
			ID:           c.Manifest.ID,
			Name:         c.Manifest.Name,
			Path:         c.Dir,
			Order:        c.Index,
			Dependencies: nonNil(c.Manifest.Dependencies),
			Lessons:      make([]LessonEntry, 0, len(c.Lessons)),
		}
		for _, l := range c.Lessons {
			le := LessonEntry{
				ID:           l.Manifest.ID,
				Name:         l.Manifest.Name,
				Path:         l.Dir,
				Order:        l.Index,
				Dependencies: nonNil(l.Manifest.Dependencies),
				Exercises:    make([]ExerciseEntry, 0, len(l.Exercises)),
			}
			for _, e := range l.Exercises {
				le.Exercises = append(le.Exercises, ExerciseEntry{
					ID:           e.Manifest.ID,
					Name:         e.Manifest.Name,
					Path:         e.Dir,
					Order:        e.Index,
					ExerciseType: e.Manifest.ExerciseType,
				})
			}
			lib.Counts.Exercises += len(l.Exercises)
			ce.Lessons = append(ce.Lessons, le)
		}
		lib.Counts.Lessons += len(c.Lessons)
		lib.Courses = append(lib.Courses, ce)
	}
	lib.Counts.Courses = len(courses)
	return lib
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
