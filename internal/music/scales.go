package music

import "fmt"

// ScaleType is a seven-note diatonic scale.
type ScaleType int

const (
	Major ScaleType = iota
	Minor
)

// String returns the display name of the scale.
func (s ScaleType) String() string {
	switch s {
	case Major:
		return "Major"
	case Minor:
		return "Minor"
	}
	return fmt.Sprintf("ScaleType(%d)", int(s))
}

// Intervals returns the semitone steps between consecutive scale degrees,
// wrapping back to the octave.
func (s ScaleType) Intervals() []int {
	switch s {
	case Major:
		return []int{2, 2, 1, 2, 2, 2, 1}
	case Minor:
		return []int{2, 1, 2, 2, 1, 2, 2}
	}
	return nil
}

// Notes spells the scale starting on root, one note per letter.
func (s ScaleType) Notes(root Note) ([]Note, error) {
	intervals := s.Intervals()
	if intervals == nil {
		return nil, fmt.Errorf("unknown scale type %d", int(s))
	}

	notes := []Note{root}
	semitones := 0
	for degree, step := range intervals[:len(intervals)-1] {
		semitones += step
		n, err := root.Transpose(degree+1, semitones)
		if err != nil {
			return nil, fmt.Errorf("cannot spell %s %s scale: %w", root, s, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}
