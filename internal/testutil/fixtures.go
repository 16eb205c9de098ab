package testutil

import (
	"encoding/json"
	"fmt"
)

func mustJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("testutil: failed to encode fixture: %v", err))
	}
	return string(data)
}

// CourseJSON returns a minimal course manifest.
func CourseJSON(id, name string, deps ...string) string {
	m := map[string]any{"id": id, "name": name}
	if len(deps) > 0 {
		m["dependencies"] = deps
	}
	return mustJSON(m)
}

// LessonJSON returns a minimal lesson manifest.
func LessonJSON(id, courseID, name string, deps ...string) string {
	m := map[string]any{"id": id, "course_id": courseID, "name": name}
	if len(deps) > 0 {
		m["dependencies"] = deps
	}
	return mustJSON(m)
}

// ExerciseJSON returns a declarative flashcard exercise manifest using
// front.md and back.md.
func ExerciseJSON(id, lessonID, courseID, name string) string {
	return mustJSON(map[string]any{
		"id":            id,
		"lesson_id":     lessonID,
		"course_id":     courseID,
		"name":          name,
		"exercise_type": "Declarative",
		"exercise_asset": map[string]any{
			"FlashcardAsset": map[string]any{"front_path": "front.md", "back_path": "back.md"},
		},
	})
}

// Flashcard adds an exercise manifest and its two flashcard files under dir.
func Flashcard(files map[string]string, dir, id, lessonID, courseID string) {
	files[dir+"/exercise_manifest.json"] = ExerciseJSON(id, lessonID, courseID, "Exercise "+id)
	files[dir+"/front.md"] = "Front of " + id + "\n"
	files[dir+"/back.md"] = "Back of " + id + "\n"
}

// Well-formed library IDs.
const (
	BasicsCourse  = "music::basics"
	NotesLesson   = "music::basics::notes"
	RhythmLesson  = "music::basics::rhythm"
	ScalesCourse  = "music::scales"
	MajorLesson   = "music::scales::major"
	SoundSliceURL = "https://www.soundslice.com/slices/QrCc/"
)

// WellFormedLibrary returns a valid library of two courses, three lessons and
// four exercises exercising every asset kind.
func WellFormedLibrary() map[string]string {
	files := map[string]string{
		"01_basics/course_manifest.json": mustJSON(map[string]any{
			"id":      BasicsCourse,
			"name":    "Music Basics",
			"authors": []string{"The Trane Project"},
			"metadata": map[string][]string{
				"skill":      {"music"},
				"instrument": {"guitar"},
			},
			"course_instructions": map[string]any{
				"MarkdownAsset": map[string]any{"path": "instructions.md"},
			},
		}),
		"01_basics/instructions.md": "Play slowly.\n",

		"01_basics/01_notes/lesson_manifest.json": LessonJSON(NotesLesson, BasicsCourse, "Notes"),
		"01_basics/02_rhythm/lesson_manifest.json": mustJSON(map[string]any{
			"id":           RhythmLesson,
			"course_id":    BasicsCourse,
			"name":         "Rhythm",
			"dependencies": []string{NotesLesson},
			"lesson_material": map[string]any{
				"InlinedAsset": map[string]any{"content": "Count out loud."},
			},
		}),

		"02_scales/course_manifest.json":          CourseJSON(ScalesCourse, "Scales", BasicsCourse),
		"02_scales/01_major/lesson_manifest.json": LessonJSON(MajorLesson, ScalesCourse, "Major Scale"),
		"02_scales/01_major/01_c_major/exercise_manifest.json": mustJSON(map[string]any{
			"id":            MajorLesson + "::c",
			"lesson_id":     MajorLesson,
			"course_id":     ScalesCourse,
			"name":          "Play C major",
			"exercise_type": "Procedural",
			"exercise_asset": map[string]any{
				"SoundSliceAsset": map[string]any{"link": SoundSliceURL, "description": "C major"},
			},
		}),
	}
	Flashcard(files, "01_basics/01_notes/01_c", NotesLesson+"::c", NotesLesson, BasicsCourse)
	Flashcard(files, "01_basics/01_notes/02_d", NotesLesson+"::d", NotesLesson, BasicsCourse)
	Flashcard(files, "01_basics/02_rhythm/01_quarter", RhythmLesson+"::quarter", RhythmLesson, BasicsCourse)
	return files
}
