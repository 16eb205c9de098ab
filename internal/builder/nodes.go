package builder

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/dag"
)

// claim is a manifest file occupying a directory, decoded or not.
type claim struct {
	path string
	kind config.Kind
	doc  *config.Document
}

func kindRank(k config.Kind) int {
	for i, kind := range config.Kinds {
		if kind == k {
			return i
		}
	}
	return len(config.Kinds)
}

// createUnits claims one manifest per directory, checks that each manifest
// sits where its kind belongs, and links lessons and exercises to their
// parents.
func (t *tree) createUnits(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting unit creation pass.")

	claims := make([]claim, 0, len(t.model.Documents)+len(t.model.LoadErrors))
	for _, d := range t.model.Documents {
		claims = append(claims, claim{path: d.Path, kind: d.Kind, doc: d})
	}
	for _, le := range t.model.LoadErrors {
		claims = append(claims, claim{path: le.Path, kind: le.Kind})
	}
	// Within a directory the outermost kind claims it, so a stray inner
	// manifest is the one reported.
	sort.Slice(claims, func(i, j int) bool {
		a, b := claims[i], claims[j]
		if da, db := filepath.Dir(a.path), filepath.Dir(b.path); da != db {
			return da < db
		}
		if ra, rb := kindRank(a.kind), kindRank(b.kind); ra != rb {
			return ra < rb
		}
		return a.path < b.path
	})

	first := make(map[string]string)
	for _, c := range claims {
		dir := filepath.Dir(c.path)
		if prev, ok := first[dir]; ok {
			t.report(c.path, string(c.kind)+" manifest", ConstraintDuplicateManifest,
				"directory already holds manifest %s", t.rel(prev))
			continue
		}
		first[dir] = c.path
		t.dirKinds[dir] = c.kind
		if c.doc != nil {
			t.dirDocs[dir] = c.doc
			t.docs = append(t.docs, c.doc)
		}
	}

	// Parents are created before children so they can be looked up by directory.
	for _, d := range t.docsByKind() {
		if d.Dir == t.root {
			t.report(d.Path, d.Label(), ConstraintMisplacedManifest,
				"manifests must live in a unit directory below the library root")
			continue
		}
		switch d.Kind {
		case config.KindCourse:
			t.createCourse(d)
		case config.KindLesson:
			t.createLesson(d)
		case config.KindExercise:
			t.createExercise(d)
		}
	}
	logger.Debug("Finished unit creation pass.")
}

func (t *tree) createCourse(d *config.Document) {
	for a := filepath.Dir(d.Dir); a != t.root && a != filepath.Dir(a); a = filepath.Dir(a) {
		if kind, ok := t.dirKinds[a]; ok {
			t.report(d.Path, d.Label(), ConstraintNestedCourse,
				"course is nested inside %s directory %s", kind, t.rel(a))
			return
		}
	}

	c := &Course{
		Doc:      d,
		Manifest: d.Course,
		Dir:      t.rel(d.Dir),
		Index:    t.resolveIndex(d),
	}
	t.courses[d.Dir] = c
	t.courseList = append(t.courseList, c)
}

func (t *tree) createLesson(d *config.Document) {
	parent := filepath.Dir(d.Dir)
	if kind, ok := t.dirKinds[parent]; !ok || kind != config.KindCourse {
		t.report(d.Path, d.Label(), ConstraintLessonOutsideCourse,
			"lesson directory must be directly inside a course directory")
		return
	}
	course, ok := t.courses[parent]
	if !ok {
		// The course manifest failed to decode or was rejected; that is
		// already reported.
		return
	}

	l := &Lesson{
		Doc:      d,
		Manifest: d.Lesson,
		Dir:      t.rel(d.Dir),
		Index:    t.resolveIndex(d),
		Course:   course,
	}
	course.Lessons = append(course.Lessons, l)
	t.lessons[d.Dir] = l
}

func (t *tree) createExercise(d *config.Document) {
	parent := filepath.Dir(d.Dir)
	if kind, ok := t.dirKinds[parent]; !ok || kind != config.KindLesson {
		t.report(d.Path, d.Label(), ConstraintExerciseOutsideLesson,
			"exercise directory must be directly inside a lesson directory")
		return
	}
	lesson, ok := t.lessons[parent]
	if !ok {
		return
	}

	e := &Exercise{
		Doc:      d,
		Manifest: d.Exercise,
		Dir:      t.rel(d.Dir),
		Index:    t.resolveIndex(d),
		Lesson:   lesson,
	}
	lesson.Exercises = append(lesson.Exercises, e)
	t.exercises[d.Dir] = e
}

// resolveIndex returns the ordering index of a unit: the manifest's order
// field, or else the numeric prefix of its directory name.
func (t *tree) resolveIndex(d *config.Document) *int {
	explicit := d.Order()
	prefix, hasPrefix, err := dirIndex(filepath.Base(d.Dir))
	if err != nil {
		t.report(d.Dir, d.Label(), ConstraintInvalidOrder, "directory prefix is not a valid ordering index: %v", err)
	}

	switch {
	case explicit != nil && hasPrefix && *explicit != prefix:
		t.report(d.Path, d.Label(), ConstraintOrderConflict,
			"order %d disagrees with directory prefix %d", *explicit, prefix)
		return explicit
	case explicit != nil:
		return explicit
	case hasPrefix:
		return &prefix
	}
	return nil
}

// dirIndex parses a leading run of digits terminated by '_', '-', '.' or the
// end of the name, e.g. "03_triads" -> 3.
func dirIndex(name string) (int, bool, error) {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false, nil
	}
	if i < len(name) && name[i] != '_' && name[i] != '-' && name[i] != '.' {
		return 0, false, nil
	}
	n, err := strconv.Atoi(name[:i])
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// lessByIndex orders units with an index before units without one. Ordered
// units sort by index, then ID; unordered ones by ID.
func lessByIndex(ai *int, aID string, bi *int, bID string) bool {
	switch {
	case ai != nil && bi != nil:
		if *ai != *bi {
			return *ai < *bi
		}
	case ai != nil:
		return true
	case bi != nil:
		return false
	}
	return aID < bID
}

// canonicalOrder sorts lessons and exercises in place and returns the courses
// in dependency order. It must only run on a library without violations.
func (t *tree) canonicalOrder(courseGraph *dag.Graph) ([]*Course, error) {
	byID := make(map[string]*Course, len(t.courseList))
	for _, c := range t.courseList {
		byID[c.Manifest.ID] = c

		sort.Slice(c.Lessons, func(i, j int) bool {
			a, b := c.Lessons[i], c.Lessons[j]
			return lessByIndex(a.Index, a.Manifest.ID, b.Index, b.Manifest.ID)
		})
		for _, l := range c.Lessons {
			sort.Slice(l.Exercises, func(i, j int) bool {
				a, b := l.Exercises[i], l.Exercises[j]
				return lessByIndex(a.Index, a.Manifest.ID, b.Index, b.Manifest.ID)
			})
		}
	}

	ids, err := courseGraph.TopologicalSort(func(a, b string) bool {
		ca, cb := byID[a], byID[b]
		return lessByIndex(ca.Index, a, cb.Index, b)
	})
	if err != nil {
		return nil, err
	}

	courses := make([]*Course, 0, len(ids))
	for _, id := range ids {
		courses = append(courses, byID[id])
	}
	return courses, nil
}
