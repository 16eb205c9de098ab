package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/fsutil"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// validateFields runs the schema struct tags over every decoded manifest.
func (t *tree) validateFields(ctx context.Context, v *validator.Validate) {
	logger := ctxlog.FromContext(ctx)
	for _, d := range t.docs {
		err := v.StructCtx(ctx, d.Target())
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			t.report(d.Path, d.Label(), ConstraintDecode, "manifest could not be validated: %v", err)
			continue
		}
		logger.Debug("Manifest failed field validation.", "path", d.Path, "errors", len(fieldErrs))
		for _, fe := range fieldErrs {
			t.report(d.Path, d.Label(), Constraint(fe.Tag()), "%s", fieldMessage(fe))
		}
	}
}

// fieldPath strips the top-level struct name from a validator namespace, so
// "CourseManifest.course_material.variant" becomes "course_material.variant".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "notblank":
		return fmt.Sprintf("field '%s' must not be blank", field)
	case "unit_id":
		return fmt.Sprintf("field '%s' must be a non-empty ID without whitespace, got %q", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "relpath":
		return fmt.Sprintf("field '%s' must be a relative path inside the unit directory, got %q", field, fe.Value())
	case "url":
		return fmt.Sprintf("field '%s' must be a valid URL, got %q", field, fe.Value())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s", field, fe.Param())
	case schema.TagOneVariant:
		parent := strings.TrimSuffix(field, ".variant")
		return fmt.Sprintf("asset '%s' must set exactly one of %s", parent, strings.ReplaceAll(fe.Param(), "|", ", "))
	}
	return fmt.Sprintf("field '%s' failed the '%s' check", field, fe.Tag())
}

// checkIDs reports every unit whose ID was already declared by an earlier
// manifest, courses first. Unit IDs share one namespace across the whole
// library.
func (t *tree) checkIDs() {
	first := make(map[string]*config.Document)
	for _, d := range t.docsByKind() {
		id := d.ID()
		if id == "" {
			continue
		}
		if prev, ok := first[id]; ok {
			t.report(d.Path, d.Label(), ConstraintDuplicateID,
				"id '%s' is already declared by %s", id, t.rel(prev.Path))
			continue
		}
		first[id] = d
	}
}

// docsByKind returns the decoded manifests, courses first, then lessons, then
// exercises, each group in path order.
func (t *tree) docsByKind() []*config.Document {
	docs := make([]*config.Document, 0, len(t.docs))
	for _, kind := range config.Kinds {
		for _, d := range t.docs {
			if d.Kind == kind {
				docs = append(docs, d)
			}
		}
	}
	return docs
}

// checkParents verifies that lessons and exercises name the course and
// lesson whose directories enclose them.
func (t *tree) checkParents() {
	for _, c := range t.courseList {
		for _, l := range c.Lessons {
			if l.Manifest.CourseID != "" && l.Manifest.CourseID != c.Manifest.ID {
				t.report(l.Doc.Path, l.Doc.Label(), ConstraintParentMismatch,
					"course_id '%s' does not match enclosing course '%s'", l.Manifest.CourseID, c.Manifest.ID)
			}
			for _, e := range l.Exercises {
				if e.Manifest.LessonID != "" && e.Manifest.LessonID != l.Manifest.ID {
					t.report(e.Doc.Path, e.Doc.Label(), ConstraintParentMismatch,
						"lesson_id '%s' does not match enclosing lesson '%s'", e.Manifest.LessonID, l.Manifest.ID)
				}
				if e.Manifest.CourseID != "" && e.Manifest.CourseID != c.Manifest.ID {
					t.report(e.Doc.Path, e.Doc.Label(), ConstraintParentMismatch,
						"course_id '%s' does not match enclosing course '%s'", e.Manifest.CourseID, c.Manifest.ID)
				}
			}
		}
	}
}

// indexed is a sibling unit taking part in the duplicate index check.
type indexed struct {
	doc   *config.Document
	index *int
}

// checkOrder reports siblings that share an ordering index: courses across
// the library, lessons within a course and exercises within a lesson.
func (t *tree) checkOrder() {
	var courses []indexed
	for _, c := range t.courseList {
		courses = append(courses, indexed{c.Doc, c.Index})

		lessons := make([]indexed, 0, len(c.Lessons))
		for _, l := range c.Lessons {
			lessons = append(lessons, indexed{l.Doc, l.Index})

			exercises := make([]indexed, 0, len(l.Exercises))
			for _, e := range l.Exercises {
				exercises = append(exercises, indexed{e.Doc, e.Index})
			}
			t.checkSiblingOrder(exercises)
		}
		t.checkSiblingOrder(lessons)
	}
	t.checkSiblingOrder(courses)
}

func (t *tree) checkSiblingOrder(siblings []indexed) {
	groups := make(map[int][]*config.Document)
	for _, s := range siblings {
		if s.index == nil {
			continue
		}
		groups[*s.index] = append(groups[*s.index], s.doc)
	}

	for index, docs := range groups {
		if len(docs) < 2 {
			continue
		}
		for _, d := range docs {
			var others []string
			for _, o := range docs {
				if o != d {
					others = append(others, fmt.Sprintf("%s (%s)", o.Label(), t.rel(o.Dir)))
				}
			}
			sort.Strings(others)
			t.report(d.Path, d.Label(), ConstraintDuplicateOrder,
				"ordering index %d is also used by %s", index, strings.Join(others, ", "))
		}
	}
}

// checkAssets verifies that every file a manifest references exists inside
// the manifest's directory, and remembers it for the unreferenced file check.
// Symlinks are followed and must resolve inside the directory too.
func (t *tree) checkAssets() {
	for _, d := range t.docs {
		dir, err := filepath.EvalSymlinks(d.Dir)
		if err != nil {
			t.report(d.Dir, d.Label(), ConstraintDecode, "unit directory could not be resolved: %v", err)
			continue
		}
		for _, p := range d.AssetPaths() {
			local := filepath.FromSlash(p)
			if !filepath.IsLocal(local) {
				// The relpath field check already reports this.
				continue
			}
			if _, _, ok := config.ParseManifestName(filepath.Base(local)); ok {
				t.report(d.Path, d.Label(), ConstraintManifestAsset,
					"referenced asset '%s' is a manifest file name, which is reserved for units", p)
				continue
			}

			full := filepath.Join(d.Dir, local)
			resolved, err := filepath.EvalSymlinks(full)
			if err != nil {
				t.report(d.Path, d.Label(), ConstraintMissingAsset, "referenced asset '%s' does not exist", p)
				continue
			}
			if within, err := fsutil.IsWithin(resolved, dir); err != nil || !within {
				t.report(d.Path, d.Label(), ConstraintAssetOutsideUnit,
					"referenced asset '%s' resolves to %s, outside the unit directory", p, resolved)
				continue
			}
			info, err := os.Stat(resolved)
			switch {
			case err != nil:
				t.report(d.Path, d.Label(), ConstraintMissingAsset, "referenced asset '%s' does not exist", p)
			case !info.Mode().IsRegular():
				t.report(d.Path, d.Label(), ConstraintMissingAsset, "referenced asset '%s' is not a regular file", p)
			default:
				t.referenced[full] = true
			}
		}
	}
}
