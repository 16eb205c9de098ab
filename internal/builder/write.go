package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/trane-courses/internal/config"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/fsutil"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

const (
	// LibraryDir is the directory under the output root holding the engine
	// library.
	LibraryDir = "library"
	// IndexFile is the file name of the library index under the output root.
	IndexFile = "manifest.json"
	// ManifestExt is the extension of every manifest written to the library.
	ManifestExt = ".json"
)

// Write renders res into outDir. The output is assembled in a staging
// directory and swapped into place only once it is complete, so outDir is
// either fully replaced or left untouched.
func Write(ctx context.Context, res *Result, outDir string) error {
	ctx, logger := ctxlog.With(ctx, "out", outDir)
	logger.Debug("Writing course library.")

	err := fsutil.ReplaceDir(outDir, func(staging string) error {
		libRoot := filepath.Join(staging, LibraryDir)
		if err := os.MkdirAll(libRoot, 0o755); err != nil {
			return fmt.Errorf("failed to create library directory: %w", err)
		}
		for _, c := range res.Courses {
			if err := writeCourse(ctx, c, libRoot); err != nil {
				return err
			}
		}

		data, err := schema.EncodeJSON(res.Library)
		if err != nil {
			return fmt.Errorf("failed to encode library index: %w", err)
		}
		return fsutil.WriteFile(filepath.Join(staging, IndexFile), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write output to %s: %w", outDir, err)
	}

	logger.Info("Course library written.", "courses", res.Library.Counts.Courses)
	return nil
}

func writeCourse(ctx context.Context, c *Course, libRoot string) error {
	ctxlog.FromContext(ctx).Debug("Writing course.", "course_id", c.Manifest.ID, "dir", c.Dir)

	m := *c.Manifest
	m.Order = nil
	m.Normalize()
	if err := writeUnit(libRoot, c.Dir, c.Doc, config.KindCourse, &m); err != nil {
		return err
	}

	for _, l := range c.Lessons {
		lm := *l.Manifest
		lm.Order = nil
		lm.Normalize()
		if err := writeUnit(libRoot, l.Dir, l.Doc, config.KindLesson, &lm); err != nil {
			return err
		}

		for _, e := range l.Exercises {
			em := *e.Manifest
			em.Order = nil
			if err := writeUnit(libRoot, e.Dir, e.Doc, config.KindExercise, &em); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeUnit writes the normalized manifest of one unit and copies the assets
// it references.
func writeUnit(libRoot, dir string, doc *config.Document, kind config.Kind, manifest any) error {
	target := filepath.Join(libRoot, filepath.FromSlash(dir))

	data, err := schema.EncodeJSON(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", doc.Label(), err)
	}
	if err := fsutil.WriteFile(filepath.Join(target, kind.ManifestFile(ManifestExt)), data); err != nil {
		return err
	}

	for _, p := range doc.AssetPaths() {
		local := filepath.FromSlash(p)
		if err := fsutil.CopyFile(filepath.Join(doc.Dir, local), filepath.Join(target, local)); err != nil {
			return err
		}
	}
	return nil
}
