package hcl_adapter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Format implements config.Loader.
func (l *Loader) Format() string { return "hcl" }

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".hcl"} }

// Load parses a single HCL manifest and translates it into the agnostic model.
func (l *Loader) Load(ctx context.Context, path string, kind config.Kind) (*config.Document, error) {
	ctx, logger := ctxlog.With(ctx, "path", path, "kind", kind)
	logger.Debug("HCL loader started.")

	// A fresh parser per file keeps the parser's file cache from growing
	// across a whole library walk.
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	evalCtx := newEvalContext(filepath.Base(filepath.Dir(path)))
	doc := config.NewDocument(kind, l.Format(), path)

	switch kind {
	case config.KindCourse:
		var c Course
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &c); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %w", diags)
		}
		m, err := l.translateCourse(ctx, &c, evalCtx)
		if err != nil {
			return nil, err
		}
		doc.Course = m
	case config.KindLesson:
		var les Lesson
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &les); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %w", diags)
		}
		m, err := l.translateLesson(ctx, &les, evalCtx)
		if err != nil {
			return nil, err
		}
		doc.Lesson = m
	case config.KindExercise:
		var e Exercise
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &e); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %w", diags)
		}
		doc.Exercise = l.translateExercise(ctx, &e)
	default:
		return nil, fmt.Errorf("unsupported manifest kind %q", kind)
	}

	logger.Debug("HCL loading complete.", "id", doc.ID())
	return doc, nil
}

// diagsError flattens diagnostics into an error, or nil when there are none.
func diagsError(diags hcl.Diagnostics) error {
	if !diags.HasErrors() {
		return nil
	}
	return diags
}
