// Package fretboard generates the guitar fretboard courses.
package fretboard

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/trane-courses/internal/coursegen"
	"github.com/specialistvlad/trane-courses/internal/music"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

// Authors is credited on every generated course.
const Authors = "The Trane Project"

// Metadata keys understood by the learning engine's filters.
const (
	MetaSkill          = "skill"
	MetaInstrument     = "instrument"
	MetaMusicalSkill   = "musical_skill"
	MetaMusicalConcept = "musical_concept"
	MetaScaleType      = "scale_type"
	MetaKey            = "key"
)

const (
	MajorScaleCourseID = "trane::guitar::fretboard_exploration::major_scale"
	MinorScaleCourseID = "trane::guitar::fretboard_exploration::minor_scale"
)

// StandardTuning lists the open strings from low to high. The high E string
// is left out since it repeats the low one.
var StandardTuning = []music.Note{music.E, music.A, music.D, music.G, music.B}

const explorationInstructions = `Inspired by an exercise from the book *The Advancing Guitarist*.

Explore the scale in each individual string without jumping across
multiple strings. Explore different fingerings, techniques, dynamics,
etc.

You can use a vamp or backing track, although they are not provided
here.
`

// ExplorationCourse explores a scale all over the fretboard, one lesson per
// key of the circle of fifths and one exercise per string.
type ExplorationCourse struct {
	CourseID      string
	Dependencies  []string
	DirectoryName string
	Scale         music.ScaleType
	// NoteAlias maps each key of the circle to the lesson's root note.
	NoteAlias func(music.Note) (music.Note, error)
	// Tuning defaults to StandardTuning.
	Tuning []music.Note
}

// MajorScale is the fretboard exploration course for the major scale.
func MajorScale() ExplorationCourse {
	return ExplorationCourse{
		CourseID:      MajorScaleCourseID,
		DirectoryName: "fretboard_major_scale",
		Scale:         music.Major,
	}
}

// MinorScale is the fretboard exploration course for the natural minor
// scale. Its lessons follow the circle of fifths through the relative minors.
func MinorScale() ExplorationCourse {
	return ExplorationCourse{
		CourseID:      MinorScaleCourseID,
		DirectoryName: "fretboard_minor_scale",
		Scale:         music.Minor,
		NoteAlias:     music.Note.RelativeMinor,
	}
}

// CourseBuilder generates the course.
func (c ExplorationCourse) CourseBuilder() (*coursegen.CourseBuilder, error) {
	scale := c.Scale.String()
	gen := coursegen.CircleFifthsCourse{
		DirectoryName: c.DirectoryName,
		Manifest: schema.CourseManifest{
			ID:           c.CourseID,
			Name:         fmt.Sprintf("Explore the %s Scale in the fretboard", scale),
			Dependencies: c.Dependencies,
			Description:  fmt.Sprintf("Explore the %s scale in all strings in the fretboard for all keys.", scale),
			Authors:      []string{Authors},
			Metadata: map[string][]string{
				MetaSkill:          {"music"},
				MetaInstrument:     {"guitar"},
				MetaMusicalSkill:   {"fretboard"},
				MetaMusicalConcept: {"scales"},
				MetaScaleType:      {strings.ToLower(scale)},
			},
			CourseInstructions: &schema.BasicAsset{
				MarkdownAsset: &schema.MarkdownAsset{Path: "course_instructions.md"},
			},
		},
		Assets: []coursegen.AssetBuilder{
			{FileName: "course_instructions.md", Contents: explorationInstructions},
		},
		NoteAlias: c.NoteAlias,
		Generator: c.lesson,
	}
	return gen.CourseBuilder()
}

func (c ExplorationCourse) lessonID(note music.Note) string {
	return fmt.Sprintf("%s::%s", c.CourseID, note)
}

func (c ExplorationCourse) lesson(note music.Note, previous *music.Note) (coursegen.LessonBuilder, error) {
	exercises, err := c.exercises(note)
	if err != nil {
		return coursegen.LessonBuilder{}, err
	}

	deps := []string{}
	if previous != nil {
		deps = append(deps, c.lessonID(*previous))
	}

	return coursegen.LessonBuilder{
		DirectoryName: "lesson_" + note.ASCII(),
		Manifest: schema.LessonManifest{
			ID:           c.lessonID(note),
			CourseID:     c.CourseID,
			Name:         fmt.Sprintf("Explore the %s %s Scale in the fretboard", note, c.Scale),
			Description:  fmt.Sprintf("Explore the notes of the %s %s scale in the fretboard.", note, c.Scale),
			Dependencies: deps,
			Metadata:     map[string][]string{MetaKey: {note.ASCII()}},
		},
		Exercises: exercises,
	}, nil
}

func (c ExplorationCourse) exercises(note music.Note) ([]coursegen.ExerciseBuilder, error) {
	notes, err := c.Scale.Notes(note)
	if err != nil {
		return nil, err
	}
	answer := make([]string, len(notes))
	for i, n := range notes {
		answer[i] = n.String()
	}

	tuning := c.Tuning
	if tuning == nil {
		tuning = StandardTuning
	}

	builders := make([]coursegen.ExerciseBuilder, 0, len(tuning))
	for i, str := range tuning {
		order := i
		builders = append(builders, coursegen.ExerciseBuilder{
			DirectoryName: str.ASCII() + "_string",
			Manifest: schema.ExerciseManifest{
				ID:           fmt.Sprintf("%s::%s_string", c.lessonID(note), str),
				LessonID:     c.lessonID(note),
				CourseID:     c.CourseID,
				Name:         fmt.Sprintf("Explore the %s %s scale in the %s string", note, c.Scale, str),
				ExerciseType: schema.Procedural,
				ExerciseAsset: schema.ExerciseAsset{
					FlashcardAsset: &schema.FlashcardAsset{FrontPath: "front.md", BackPath: "back.md"},
				},
				Order: &order,
			},
			Assets: []coursegen.AssetBuilder{
				{
					FileName: "front.md",
					Contents: fmt.Sprintf("Explore the %s %s scale in the %s string.\n", note, c.Scale, str),
				},
				{
					FileName: "back.md",
					Contents: fmt.Sprintf("The notes of the %s %s scale are: %s.\n", note, c.Scale, strings.Join(answer, ", ")),
				},
			},
		})
	}
	return builders, nil
}
