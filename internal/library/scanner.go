// Package library discovers the manifest files below a course library root
// and hands each one to the loader registered for its extension.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/fsutil"
)

// Scanner walks a library directory and builds the agnostic config model.
type Scanner struct {
	loaders map[string]config.Loader
}

// NewScanner creates a scanner that dispatches manifest files to the given
// loaders by extension. A later loader wins when two claim the same extension.
func NewScanner(loaders ...config.Loader) *Scanner {
	s := &Scanner{loaders: make(map[string]config.Loader)}
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			s.loaders[ext] = l
		}
	}
	return s
}

// Extensions lists the manifest extensions the scanner can decode, sorted.
func (s *Scanner) Extensions() []string {
	exts := make([]string, 0, len(s.loaders))
	for ext := range s.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Scan walks root and decodes every manifest found. Manifests that fail to
// decode are recorded in the model's LoadErrors instead of stopping the walk,
// so one run reports every broken file. Only an unreadable root is fatal.
func (s *Scanner) Scan(ctx context.Context, root string) (*config.Model, error) {
	ctx, logger := ctxlog.With(ctx, "root", root)
	logger.Debug("Library scan started.")

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error accessing course root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("course root %s is not a directory", root)
	}

	files, err := fsutil.FindFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk course root %s: %w", root, err)
	}
	logger.Debug("Discovered files.", "count", len(files))

	model := config.NewModel(root)
	for _, path := range files {
		kind, ext, ok := config.ParseManifestName(filepath.Base(path))
		if !ok {
			model.Files = append(model.Files, path)
			continue
		}

		loader, ok := s.loaders[ext]
		if !ok {
			model.LoadErrors = append(model.LoadErrors, &config.LoadError{
				Path: path,
				Kind: kind,
				Err:  fmt.Errorf("unsupported manifest format %q (supported: %v)", ext, s.Extensions()),
			})
			continue
		}

		doc, err := loader.Load(ctx, path, kind)
		if err != nil {
			logger.Debug("Manifest failed to load.", "path", path, "error", err)
			model.LoadErrors = append(model.LoadErrors, &config.LoadError{Path: path, Kind: kind, Err: err})
			continue
		}
		model.Documents = append(model.Documents, doc)
	}

	logger.Debug("Library scan complete.",
		"manifests", len(model.Documents),
		"files", len(model.Files),
		"load_errors", len(model.LoadErrors))
	return model, nil
}
