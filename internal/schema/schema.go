package schema

// --- Asset Structures ---

// ExerciseType tells the learning engine how an exercise is practiced.
type ExerciseType string

const (
	// Declarative exercises test recall of a fact.
	Declarative ExerciseType = "Declarative"
	// Procedural exercises test a skill that is performed, e.g. on an instrument.
	Procedural ExerciseType = "Procedural"
)

// MarkdownAsset points to a markdown file relative to the owning unit's directory.
type MarkdownAsset struct {
	Path string `json:"path" yaml:"path" validate:"required,relpath"`
}

// InlinedAsset carries its markdown content directly inside the manifest.
type InlinedAsset struct {
	Content string `json:"content" yaml:"content" validate:"required"`
}

// BasicAsset is an externally tagged union. Exactly one variant must be set,
// so it serializes as {"MarkdownAsset": {...}} or {"InlinedAsset": {...}}.
type BasicAsset struct {
	MarkdownAsset *MarkdownAsset `json:"MarkdownAsset,omitempty" yaml:"MarkdownAsset,omitempty"`
	InlinedAsset  *InlinedAsset  `json:"InlinedAsset,omitempty" yaml:"InlinedAsset,omitempty"`
}

// FlashcardAsset is a front/back pair of markdown files. The back is optional.
type FlashcardAsset struct {
	FrontPath string `json:"front_path" yaml:"front_path" validate:"required,relpath"`
	BackPath  string `json:"back_path,omitempty" yaml:"back_path,omitempty" validate:"omitempty,relpath"`
}

// SoundSliceAsset links to an interactive SoundSlice page.
type SoundSliceAsset struct {
	Link        string `json:"link" yaml:"link" validate:"required,url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Backup      string `json:"backup,omitempty" yaml:"backup,omitempty" validate:"omitempty,relpath"`
}

// ExerciseAsset is the externally tagged union of everything an exercise can
// present. Exactly one variant must be set.
type ExerciseAsset struct {
	FlashcardAsset  *FlashcardAsset  `json:"FlashcardAsset,omitempty" yaml:"FlashcardAsset,omitempty"`
	SoundSliceAsset *SoundSliceAsset `json:"SoundSliceAsset,omitempty" yaml:"SoundSliceAsset,omitempty"`
	BasicAsset      *BasicAsset      `json:"BasicAsset,omitempty" yaml:"BasicAsset,omitempty"`
}

// --- Manifest Structures ---

// CourseManifest is the contents of a course_manifest file.
type CourseManifest struct {
	ID                 string              `json:"id" yaml:"id" validate:"required,unit_id"`
	Name               string              `json:"name" yaml:"name" validate:"notblank"`
	Dependencies       []string            `json:"dependencies" yaml:"dependencies" validate:"dive,unit_id"`
	Superseded         []string            `json:"superseded,omitempty" yaml:"superseded,omitempty" validate:"dive,unit_id"`
	Description        string              `json:"description,omitempty" yaml:"description,omitempty"`
	Authors            []string            `json:"authors,omitempty" yaml:"authors,omitempty" validate:"dive,notblank"`
	Metadata           map[string][]string `json:"metadata,omitempty" yaml:"metadata,omitempty" validate:"dive,keys,notblank,endkeys,dive,notblank"`
	CourseMaterial     *BasicAsset         `json:"course_material,omitempty" yaml:"course_material,omitempty"`
	CourseInstructions *BasicAsset         `json:"course_instructions,omitempty" yaml:"course_instructions,omitempty"`
	Order              *int                `json:"order,omitempty" yaml:"order,omitempty" validate:"omitempty,min=0"`
}

// LessonManifest is the contents of a lesson_manifest file.
type LessonManifest struct {
	ID                 string              `json:"id" yaml:"id" validate:"required,unit_id"`
	CourseID           string              `json:"course_id" yaml:"course_id" validate:"required,unit_id"`
	Name               string              `json:"name" yaml:"name" validate:"notblank"`
	Dependencies       []string            `json:"dependencies" yaml:"dependencies" validate:"dive,unit_id"`
	Superseded         []string            `json:"superseded,omitempty" yaml:"superseded,omitempty" validate:"dive,unit_id"`
	Description        string              `json:"description,omitempty" yaml:"description,omitempty"`
	Metadata           map[string][]string `json:"metadata,omitempty" yaml:"metadata,omitempty" validate:"dive,keys,notblank,endkeys,dive,notblank"`
	LessonMaterial     *BasicAsset         `json:"lesson_material,omitempty" yaml:"lesson_material,omitempty"`
	LessonInstructions *BasicAsset         `json:"lesson_instructions,omitempty" yaml:"lesson_instructions,omitempty"`
	Order              *int                `json:"order,omitempty" yaml:"order,omitempty" validate:"omitempty,min=0"`
}

// ExerciseManifest is the contents of an exercise_manifest file.
type ExerciseManifest struct {
	ID            string        `json:"id" yaml:"id" validate:"required,unit_id"`
	LessonID      string        `json:"lesson_id" yaml:"lesson_id" validate:"required,unit_id"`
	CourseID      string        `json:"course_id" yaml:"course_id" validate:"required,unit_id"`
	Name          string        `json:"name" yaml:"name" validate:"notblank"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	ExerciseType  ExerciseType  `json:"exercise_type" yaml:"exercise_type" validate:"required,oneof=Declarative Procedural"`
	ExerciseAsset ExerciseAsset `json:"exercise_asset" yaml:"exercise_asset"`
	Order         *int          `json:"order,omitempty" yaml:"order,omitempty" validate:"omitempty,min=0"`
}
