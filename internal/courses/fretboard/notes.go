package fretboard

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/trane-courses/internal/coursegen"
	"github.com/specialistvlad/trane-courses/internal/music"
	"github.com/specialistvlad/trane-courses/internal/schema"
)

const (
	BasicCourseID    = "trane::guitar::basic_fretboard"
	AdvancedCourseID = "trane::guitar::advanced_fretboard"
)

// MaxFret is the highest fret the note finding exercises ask about.
const MaxFret = 12

// Accidentals lists the five pitches between the natural notes, each spelled
// as a sharp. Exercises show both enharmonic names.
var Accidentals = []music.Note{music.CSharp, music.DSharp, music.FSharp, music.GSharp, music.ASharp}

// Frets returns every fret from 0 to MaxFret on which note sounds on a string
// tuned to open.
func Frets(open, note music.Note) []int {
	var frets []int
	for f := (note.Semitone() - open.Semitone() + 12) % 12; f <= MaxFret; f += 12 {
		frets = append(frets, f)
	}
	return frets
}

// NoteFindingCourse asks the student to find a set of notes on every string.
type NoteFindingCourse struct {
	CourseID      string
	Name          string
	Description   string
	DirectoryName string
	Dependencies  []string
	Notes         []music.Note
	Tuning        []music.Note
	// Label names a note in exercise text.
	Label func(music.Note) string
}

// BasicFretboard finds the natural notes on every string.
func BasicFretboard() NoteFindingCourse {
	return NoteFindingCourse{
		CourseID:      BasicCourseID,
		Name:          "Basic Guitar Fretboard",
		Description:   "Learn to find the natural notes on every string of the guitar.",
		DirectoryName: "basic_guitar_fretboard",
		Notes:         music.Naturals,
		Label:         music.Note.String,
	}
}

// AdvancedFretboard finds the sharps and flats on every string. It builds on
// the basic course.
func AdvancedFretboard() NoteFindingCourse {
	return NoteFindingCourse{
		CourseID:      AdvancedCourseID,
		Name:          "Advanced Guitar Fretboard",
		Description:   "Learn to find the sharp and flat notes on every string of the guitar.",
		DirectoryName: "advanced_guitar_fretboard",
		Dependencies:  []string{BasicCourseID},
		Notes:         Accidentals,
		Label:         enharmonicLabel,
	}
}

// enharmonicLabel names a sharp together with its flat spelling, e.g. "C♯/D♭".
func enharmonicLabel(n music.Note) string {
	flat, err := n.Transpose(1, 0)
	if err != nil {
		return n.String()
	}
	return n.String() + "/" + flat.String()
}

// CourseBuilder generates the course: one lesson per string, each following
// the lesson for the string below it, with one declarative flashcard per note.
func (c NoteFindingCourse) CourseBuilder() *coursegen.CourseBuilder {
	tuning := c.Tuning
	if tuning == nil {
		tuning = StandardTuning
	}

	cb := &coursegen.CourseBuilder{
		DirectoryName: c.DirectoryName,
		Manifest: schema.CourseManifest{
			ID:           c.CourseID,
			Name:         c.Name,
			Dependencies: c.Dependencies,
			Description:  c.Description,
			Authors:      []string{Authors},
			Metadata: map[string][]string{
				MetaSkill:          {"music"},
				MetaInstrument:     {"guitar"},
				MetaMusicalSkill:   {"fretboard"},
				MetaMusicalConcept: {"notes"},
			},
		},
	}

	var previous string
	for i, str := range tuning {
		lessonID := fmt.Sprintf("%s::%s_string", c.CourseID, str.ASCII())
		deps := []string{}
		if previous != "" {
			deps = append(deps, previous)
		}
		previous = lessonID

		order := i
		lesson := coursegen.LessonBuilder{
			DirectoryName: str.ASCII() + "_string",
			Manifest: schema.LessonManifest{
				ID:           lessonID,
				CourseID:     c.CourseID,
				Name:         fmt.Sprintf("%s: %s String", c.Name, str),
				Description:  fmt.Sprintf("Find the notes on the %s string.", str),
				Dependencies: deps,
				Order:        &order,
			},
		}
		for j, note := range c.Notes {
			lesson.Exercises = append(lesson.Exercises, c.exercise(lessonID, str, note, j))
		}
		cb.Lessons = append(cb.Lessons, lesson)
	}
	return cb
}

func (c NoteFindingCourse) exercise(lessonID string, str, note music.Note, order int) coursegen.ExerciseBuilder {
	frets := Frets(str, note)
	positions := make([]string, len(frets))
	for i, f := range frets {
		positions[i] = fmt.Sprint(f)
	}
	label := c.Label(note)

	return coursegen.ExerciseBuilder{
		DirectoryName: note.ASCII(),
		Manifest: schema.ExerciseManifest{
			ID:           fmt.Sprintf("%s::%s", lessonID, note.ASCII()),
			LessonID:     lessonID,
			CourseID:     c.CourseID,
			Name:         fmt.Sprintf("Find %s on the %s string", label, str),
			ExerciseType: schema.Declarative,
			ExerciseAsset: schema.ExerciseAsset{
				FlashcardAsset: &schema.FlashcardAsset{FrontPath: "front.md", BackPath: "back.md"},
			},
			Order: &order,
		},
		Assets: []coursegen.AssetBuilder{
			{
				FileName: "front.md",
				Contents: fmt.Sprintf("Find the note %s on the %s string.\n", label, str),
			},
			{
				FileName: "back.md",
				Contents: fmt.Sprintf("The note %s is on fret %s of the %s string.\n", label, strings.Join(positions, " and "), str),
			},
		},
	}
}
