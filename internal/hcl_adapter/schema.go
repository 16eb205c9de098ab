package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// Every attribute is optional at the HCL level. Required fields are enforced
// by the manifest validator so that HCL, YAML and JSON authors get the same
// report for the same mistake.

// BasicAssetBlock is the HCL form of schema.BasicAsset.
type BasicAssetBlock struct {
	Markdown *string `hcl:"markdown,optional"`
	Inlined  *string `hcl:"inlined,optional"`
}

// FlashcardBlock is the HCL form of schema.FlashcardAsset.
type FlashcardBlock struct {
	Front string  `hcl:"front,optional"`
	Back  *string `hcl:"back,optional"`
}

// SoundSliceBlock is the HCL form of schema.SoundSliceAsset.
type SoundSliceBlock struct {
	Link        string  `hcl:"link,optional"`
	Description *string `hcl:"description,optional"`
	Backup      *string `hcl:"backup,optional"`
}

// Course represents a course_manifest.hcl file.
type Course struct {
	ID           string           `hcl:"id,optional"`
	Name         string           `hcl:"name,optional"`
	Dependencies []string         `hcl:"dependencies,optional"`
	Superseded   []string         `hcl:"superseded,optional"`
	Description  *string          `hcl:"description,optional"`
	Authors      []string         `hcl:"authors,optional"`
	Metadata     hcl.Expression   `hcl:"metadata,optional"`
	Order        *int             `hcl:"order,optional"`
	Material     *BasicAssetBlock `hcl:"course_material,block"`
	Instructions *BasicAssetBlock `hcl:"course_instructions,block"`
}

// Lesson represents a lesson_manifest.hcl file.
type Lesson struct {
	ID           string           `hcl:"id,optional"`
	CourseID     string           `hcl:"course_id,optional"`
	Name         string           `hcl:"name,optional"`
	Dependencies []string         `hcl:"dependencies,optional"`
	Superseded   []string         `hcl:"superseded,optional"`
	Description  *string          `hcl:"description,optional"`
	Metadata     hcl.Expression   `hcl:"metadata,optional"`
	Order        *int             `hcl:"order,optional"`
	Material     *BasicAssetBlock `hcl:"lesson_material,block"`
	Instructions *BasicAssetBlock `hcl:"lesson_instructions,block"`
}

// Exercise represents an exercise_manifest.hcl file.
type Exercise struct {
	ID           string           `hcl:"id,optional"`
	LessonID     string           `hcl:"lesson_id,optional"`
	CourseID     string           `hcl:"course_id,optional"`
	Name         string           `hcl:"name,optional"`
	Description  *string          `hcl:"description,optional"`
	ExerciseType string           `hcl:"exercise_type,optional"`
	Order        *int             `hcl:"order,optional"`
	Flashcard    *FlashcardBlock  `hcl:"flashcard,block"`
	SoundSlice   *SoundSliceBlock `hcl:"soundslice,block"`
	Asset        *BasicAssetBlock `hcl:"asset,block"`
}
