// Package hcl_adapter loads manifests authored in HCL and translates them into
// the engine's manifest structs. Attribute names match the JSON manifest
// fields; the asset unions are written as blocks, e.g.
//
//	id            = "trane::guitar::basic_fretboard::a_string::c"
//	lesson_id     = "trane::guitar::basic_fretboard::a_string"
//	course_id     = "trane::guitar::basic_fretboard"
//	name          = format("Find %s on the %s string", "C", "A")
//	exercise_type = "Declarative"
//
//	flashcard {
//	  front = "front.md"
//	  back  = "back.md"
//	}
//
// Expressions may call format, join, concat, lower, upper, title and
// trimspace, and may read the variable `dir`, the name of the directory
// holding the manifest.
package hcl_adapter
