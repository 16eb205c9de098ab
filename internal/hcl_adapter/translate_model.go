// This file contains the logic for translating the HCL schema structs into the
// engine's manifest structs defined in the schema package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/trane-courses/internal/ctxlog"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// translateCourse converts the HCL course schema into the engine manifest.
func (l *Loader) translateCourse(ctx context.Context, c *Course, evalCtx *hcl.EvalContext) (*schema.CourseManifest, error) {
	ctxlog.FromContext(ctx).Debug("Translating HCL course to manifest.", "course_id", c.ID)

	metadata, err := decodeMetadata(ctx, c.Metadata, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("in course '%s': %w", c.ID, err)
	}

	return &schema.CourseManifest{
		ID:                 c.ID,
		Name:               c.Name,
		Dependencies:       c.Dependencies,
		Superseded:         c.Superseded,
		Description:        optString(c.Description),
		Authors:            c.Authors,
		Metadata:           metadata,
		CourseMaterial:     translateBasicAsset(c.Material),
		CourseInstructions: translateBasicAsset(c.Instructions),
		Order:              c.Order,
	}, nil
}

// translateLesson converts the HCL lesson schema into the engine manifest.
func (l *Loader) translateLesson(ctx context.Context, les *Lesson, evalCtx *hcl.EvalContext) (*schema.LessonManifest, error) {
	ctxlog.FromContext(ctx).Debug("Translating HCL lesson to manifest.", "lesson_id", les.ID)

	metadata, err := decodeMetadata(ctx, les.Metadata, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("in lesson '%s': %w", les.ID, err)
	}

	return &schema.LessonManifest{
		ID:                 les.ID,
		CourseID:           les.CourseID,
		Name:               les.Name,
		Dependencies:       les.Dependencies,
		Superseded:         les.Superseded,
		Description:        optString(les.Description),
		Metadata:           metadata,
		LessonMaterial:     translateBasicAsset(les.Material),
		LessonInstructions: translateBasicAsset(les.Instructions),
		Order:              les.Order,
	}, nil
}

// translateExercise converts the HCL exercise schema into the engine manifest.
// More than one asset block is passed through as-is; the validator reports it.
func (l *Loader) translateExercise(ctx context.Context, e *Exercise) *schema.ExerciseManifest {
	ctxlog.FromContext(ctx).Debug("Translating HCL exercise to manifest.", "exercise_id", e.ID)

	m := &schema.ExerciseManifest{
		ID:           e.ID,
		LessonID:     e.LessonID,
		CourseID:     e.CourseID,
		Name:         e.Name,
		Description:  optString(e.Description),
		ExerciseType: schema.ExerciseType(e.ExerciseType),
		Order:        e.Order,
	}

	if e.Flashcard != nil {
		m.ExerciseAsset.FlashcardAsset = &schema.FlashcardAsset{
			FrontPath: e.Flashcard.Front,
			BackPath:  optString(e.Flashcard.Back),
		}
	}
	if e.SoundSlice != nil {
		m.ExerciseAsset.SoundSliceAsset = &schema.SoundSliceAsset{
			Link:        e.SoundSlice.Link,
			Description: optString(e.SoundSlice.Description),
			Backup:      optString(e.SoundSlice.Backup),
		}
	}
	if e.Asset != nil {
		m.ExerciseAsset.BasicAsset = translateBasicAsset(e.Asset)
	}
	return m
}

// translateBasicAsset converts an asset block. An empty block yields an asset
// with no variant, which the validator reports.
func translateBasicAsset(b *BasicAssetBlock) *schema.BasicAsset {
	if b == nil {
		return nil
	}
	a := &schema.BasicAsset{}
	if b.Markdown != nil {
		a.MarkdownAsset = &schema.MarkdownAsset{Path: *b.Markdown}
	}
	if b.Inlined != nil {
		a.InlinedAsset = &schema.InlinedAsset{Content: *b.Inlined}
	}
	return a
}
