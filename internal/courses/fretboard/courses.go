package fretboard

import (
	"github.com/specialistvlad/trane-courses/internal/coursegen"
)

// All returns the builders for every fretboard course, prerequisites first.
func All() ([]*coursegen.CourseBuilder, error) {
	builders := []*coursegen.CourseBuilder{
		BasicFretboard().CourseBuilder(),
		AdvancedFretboard().CourseBuilder(),
	}
	for _, c := range []ExplorationCourse{MajorScale(), MinorScale()} {
		cb, err := c.CourseBuilder()
		if err != nil {
			return nil, err
		}
		builders = append(builders, cb)
	}
	return builders, nil
}
