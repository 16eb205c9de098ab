package builder

import (
	"context"
	"strings"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/dag"
)

// linkUnits resolves the dependencies and superseded lists of every course
// and lesson, reports dangling references and cycles, and returns the course
// dependency graph used for ordering.
func (t *tree) linkUnits(ctx context.Context, opts Options) *dag.Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting dependency linking pass.")

	kinds := make(map[string]config.Kind)
	docs := make(map[string]*config.Document)
	for _, d := range t.docsByKind() {
		if id := d.ID(); id != "" {
			if _, ok := kinds[id]; !ok {
				kinds[id] = d.Kind
				docs[id] = d
			}
		}
	}

	courseGraph := dag.New()
	lessonGraph := dag.New()
	for _, c := range t.courseList {
		courseGraph.AddNode(c.Manifest.ID)
		for _, l := range c.Lessons {
			lessonGraph.AddNode(l.Manifest.ID)
		}
	}

	for _, c := range t.courseList {
		m := c.Manifest
		r := refResolver{t: t, doc: c.Doc, kinds: kinds, allowExternal: opts.AllowExternalDependencies}
		for _, dep := range m.Dependencies {
			if r.check("dependencies", dep, config.KindCourse) {
				if err := courseGraph.AddEdge(dep, m.ID); err != nil {
					logger.Debug("Skipping course edge.", "from", dep, "to", m.ID, "error", err)
				}
			}
		}
		for _, id := range m.Superseded {
			r.check("superseded", id, config.KindCourse)
		}

		for _, l := range c.Lessons {
			lm := l.Manifest
			lr := refResolver{t: t, doc: l.Doc, kinds: kinds}
			for _, dep := range lm.Dependencies {
				if lr.check("dependencies", dep, config.KindLesson, config.KindCourse) && kinds[dep] == config.KindLesson {
					if err := lessonGraph.AddEdge(dep, lm.ID); err != nil {
						logger.Debug("Skipping lesson edge.", "from", dep, "to", lm.ID, "error", err)
					}
				}
			}
			for _, id := range lm.Superseded {
				lr.check("superseded", id, config.KindLesson, config.KindCourse)
			}
		}
	}

	t.reportCycles(courseGraph, docs)
	t.reportCycles(lessonGraph, docs)
	logger.Debug("Finished dependency linking pass.")
	return courseGraph
}

// refResolver checks the references made by one manifest.
type refResolver struct {
	t             *tree
	doc           *config.Document
	kinds         map[string]config.Kind
	allowExternal bool
}

// check reports a reference that names the unit itself, names nothing in the
// library, or names a unit of a kind not listed in want. It returns true when
// the reference resolved to a unit in the library.
func (r refResolver) check(field, ref string, want ...config.Kind) bool {
	if ref == r.doc.ID() {
		r.t.report(r.doc.Path, r.doc.Label(), ConstraintSelfDependency, "%s lists the unit itself", field)
		return false
	}

	kind, ok := r.kinds[ref]
	if !ok {
		if r.allowExternal {
			return false
		}
		r.t.report(r.doc.Path, r.doc.Label(), ConstraintDanglingReference,
			"%s entry '%s' does not match any %s in the library", field, ref, kindList(want))
		return false
	}

	for _, k := range want {
		if kind == k {
			return true
		}
	}
	r.t.report(r.doc.Path, r.doc.Label(), ConstraintDanglingReference,
		"%s entry '%s' is a %s, expected a %s", field, ref, kind, kindList(want))
	return false
}

func kindList(kinds []config.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, " or ")
}

func (t *tree) reportCycles(g *dag.Graph, docs map[string]*config.Document) {
	for _, cycle := range g.Cycles() {
		d := docs[cycle[0]]
		t.report(d.Path, d.Label(), ConstraintDependencyCycle,
			"dependency cycle: %s", strings.Join(cycle, " -> "))
	}
}
