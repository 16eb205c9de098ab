package schema

import (
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// TagOneVariant is reported when an asset union has zero or several variants set.
const TagOneVariant = "one_variant"

// NewValidator returns a validator that knows the custom tags used by the
// manifest structs. Field names in errors use the json names so reports read
// like the manifest files the author is editing.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("unit_id", validUnitID)
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("relpath", relativePath)

	v.RegisterStructValidation(basicAssetVariant, BasicAsset{})
	v.RegisterStructValidation(exerciseAssetVariant, ExerciseAsset{})

	return v
}

// validUnitID accepts any non-empty ID without whitespace or control characters.
func validUnitID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// relativePath accepts paths that stay inside the owning unit's directory.
func relativePath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return filepath.IsLocal(filepath.FromSlash(p))
}

func basicAssetVariant(sl validator.StructLevel) {
	a := sl.Current().Interface().(BasicAsset)
	set := 0
	if a.MarkdownAsset != nil {
		set++
	}
	if a.InlinedAsset != nil {
		set++
	}
	if set != 1 {
		sl.ReportError(a, "variant", "variant", TagOneVariant, "MarkdownAsset|InlinedAsset")
	}
}

func exerciseAssetVariant(sl validator.StructLevel) {
	a := sl.Current().Interface().(ExerciseAsset)
	set := 0
	for _, present := range []bool{a.FlashcardAsset != nil, a.SoundSliceAsset != nil, a.BasicAsset != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		sl.ReportError(a, "variant", "variant", TagOneVariant, "FlashcardAsset|SoundSliceAsset|BasicAsset")
	}
}
