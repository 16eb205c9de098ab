package coursegen

import (
	"fmt"

	"github.com/specialistvlad/trane-courses/internal/music"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// LessonGenerator builds the lesson for one key of the circle of fifths.
// previous is the key the lesson follows on the circle, nil for the first.
type LessonGenerator func(note music.Note, previous *music.Note) (LessonBuilder, error)

// CircleFifthsCourse generates a course with one lesson per key, walking the
// circle of fifths from C in both directions. Each lesson follows the one for
// the previous key in its direction.
type CircleFifthsCourse struct {
	DirectoryName string
	Manifest      schema.CourseManifest
	Assets        []AssetBuilder

	// NoteAlias, when set, maps each key to the note the lesson is about,
	// e.g. to its relative minor.
	NoteAlias func(music.Note) (music.Note, error)

	Generator LessonGenerator
}

// Keys returns the keys in lesson order: C, then clockwise, then
// counter-clockwise, each paired with the key it follows.
func Keys() []KeyStep {
	clockwise, counter := music.CircleOfFifths()
	steps := []KeyStep{{Note: music.C}}
	for _, direction := range [][]music.Note{clockwise, counter} {
		previous := music.C
		for _, n := range direction {
			p := previous
			steps = append(steps, KeyStep{Note: n, Previous: &p})
			previous = n
		}
	}
	return steps
}

// KeyStep is a key on the circle of fifths and the key before it.
type KeyStep struct {
	Note     music.Note
	Previous *music.Note
}

// CourseBuilder runs the generator for every key and assembles the course.
// Lessons are numbered in generation order.
func (c CircleFifthsCourse) CourseBuilder() (*CourseBuilder, error) {
	if c.Generator == nil {
		return nil, fmt.Errorf("course %s has no lesson generator", c.Manifest.ID)
	}

	alias := func(n music.Note) (music.Note, error) { return n, nil }
	if c.NoteAlias != nil {
		alias = c.NoteAlias
	}

	cb := &CourseBuilder{
		DirectoryName: c.DirectoryName,
		Manifest:      c.Manifest,
		Assets:        c.Assets,
	}
	for i, step := range Keys() {
		note, err := alias(step.Note)
		if err != nil {
			return nil, fmt.Errorf("failed to alias %s: %w", step.Note, err)
		}
		var previous *music.Note
		if step.Previous != nil {
			p, err := alias(*step.Previous)
			if err != nil {
				return nil, fmt.Errorf("failed to alias %s: %w", *step.Previous, err)
			}
			previous = &p
		}

		lesson, err := c.Generator(note, previous)
		if err != nil {
			return nil, fmt.Errorf("failed to generate lesson for %s: %w", note, err)
		}
		order := i
		lesson.Manifest.Order = &order
		cb.Lessons = append(cb.Lessons, lesson)
	}
	return cb, nil
}
