// Package coursegen writes programmatically generated courses into a course
// library, in the same layout authors use for hand-written courses.
package coursegen

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

// manifestExt is the format generated manifests are written in.
const manifestExt = ".json"

// AssetBuilder is a file written next to a manifest.
type AssetBuilder struct {
	FileName string
	Contents string
}

// Build writes the asset into dir. Two assets with the same name in one
// directory are an error.
func (a AssetBuilder) Build(dir string) error {
	path := filepath.Join(dir, a.FileName)
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("asset %s already exists", path)
	}
	return fsutil.WriteFile(path, []byte(a.Contents))
}

// ExerciseBuilder generates one exercise directory.
type ExerciseBuilder struct {
	DirectoryName string
	Manifest      schema.ExerciseManifest
	Assets        []AssetBuilder
}

// Build writes the exercise into parent.
func (e ExerciseBuilder) Build(parent string) error {
	dir := filepath.Join(parent, e.DirectoryName)
	return writeUnit(dir, config.KindExercise, &e.Manifest, e.Assets)
}

// LessonBuilder generates one lesson directory with its exercises.
type LessonBuilder struct {
	DirectoryName string
	Manifest      schema.LessonManifest
	Assets        []AssetBuilder
	Exercises     []ExerciseBuilder
}

// Build writes the lesson and its exercises into parent.
func (l LessonBuilder) Build(parent string) error {
	dir := filepath.Join(parent, l.DirectoryName)
	m := l.Manifest
	m.Normalize()
	if err := writeUnit(dir, config.KindLesson, &m, l.Assets); err != nil {
		return err
	}
	for _, e := range l.Exercises {
		if err := e.Build(dir); err != nil {
			return err
		}
	}
	return nil
}

// CourseBuilder generates a whole course directory.
type CourseBuilder struct {
	DirectoryName string
	Manifest      schema.CourseManifest
	Assets        []AssetBuilder
	Lessons       []LessonBuilder
}

// Build writes the course into libraryRoot, replacing any previous copy of
// the course directory once the new one is complete.
func (c *CourseBuilder) Build(ctx context.Context, libraryRoot string) error {
	target := filepath.Join(libraryRoot, c.DirectoryName)
	ctxlog.FromContext(ctx).Debug("Generating course.", "course_id", c.Manifest.ID, "dir", target)

	err := fsutil.ReplaceDir(target, func(staging string) error {
		m := c.Manifest
		m.Normalize()
		if err := writeUnit(staging, config.KindCourse, &m, c.Assets); err != nil {
			return err
		}
		for _, l := range c.Lessons {
			if err := l.Build(staging); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to generate course %s: %w", c.Manifest.ID, err)
	}
	return nil
}

func writeUnit(dir string, kind config.Kind, manifest any, assets []AssetBuilder) error {
	data, err := schema.EncodeJSON(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode %s manifest for %s: %w", kind, dir, err)
	}
	if err := fsutil.WriteFile(filepath.Join(dir, kind.ManifestFile(manifestExt)), data); err != nil {
		return err
	}
	for _, a := range assets {
		if err := a.Build(dir); err != nil {
			return err
		}
	}
	return nil
}
