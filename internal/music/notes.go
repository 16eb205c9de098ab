// Package music holds the small amount of music theory the course generators
// need: spelled notes, the circle of fifths and scale interval patterns.
package music

import (
	"fmt"
	"strings"
)

// Letter is the natural note name, 'A' through 'G'.
type Letter byte

// letters lists the note letters in ascending order starting from C.
const letters = "CDEFGAB"

// naturalSemitones is the pitch class of each letter in letters.
var naturalSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// Accidental modifies a letter by a semitone.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

// Note is a spelled note: C♯ and D♭ sound the same but are different notes.
type Note struct {
	Letter     Letter
	Accidental Accidental
}

var (
	C      = Note{'C', Natural}
	CSharp = Note{'C', Sharp}
	CFlat  = Note{'C', Flat}
	D      = Note{'D', Natural}
	DSharp = Note{'D', Sharp}
	DFlat  = Note{'D', Flat}
	E      = Note{'E', Natural}
	EFlat  = Note{'E', Flat}
	F      = Note{'F', Natural}
	FSharp = Note{'F', Sharp}
	G      = Note{'G', Natural}
	GSharp = Note{'G', Sharp}
	GFlat  = Note{'G', Flat}
	A      = Note{'A', Natural}
	ASharp = Note{'A', Sharp}
	AFlat  = Note{'A', Flat}
	B      = Note{'B', Natural}
	BFlat  = Note{'B', Flat}
)

// Naturals lists the seven natural notes starting from C.
var Naturals = []Note{C, D, E, F, G, A, B}

// String returns the display name, e.g. "C♯" or "B♭".
func (n Note) String() string {
	switch n.Accidental {
	case Sharp:
		return string(n.Letter) + "♯"
	case Flat:
		return string(n.Letter) + "♭"
	}
	return string(n.Letter)
}

// ASCII returns a name usable in file names and metadata, e.g. "C_sharp".
func (n Note) ASCII() string {
	switch n.Accidental {
	case Sharp:
		return string(n.Letter) + "_sharp"
	case Flat:
		return string(n.Letter) + "_flat"
	}
	return string(n.Letter)
}

func (n Note) letterIndex() int {
	return strings.IndexByte(letters, byte(n.Letter))
}

// Semitone returns the pitch class of the note, 0 for C through 11 for B.
func (n Note) Semitone() int {
	i := n.letterIndex()
	if i < 0 {
		panic(fmt.Sprintf("music: invalid note letter %q", n.Letter))
	}
	pc := naturalSemitones[i]
	switch n.Accidental {
	case Sharp:
		pc++
	case Flat:
		pc--
	}
	return (pc + 12) % 12
}

// Transpose moves the note up by letterSteps letters and semitones
// semitones. The result is spelled on the target letter, so an interval that
// would need a double sharp or double flat is an error.
func (n Note) Transpose(letterSteps, semitones int) (Note, error) {
	i := n.letterIndex()
	if i < 0 {
		return Note{}, fmt.Errorf("invalid note letter %q", n.Letter)
	}

	target := (i + letterSteps%7 + 7) % 7
	pc := (n.Semitone() + semitones%12 + 12) % 12
	switch (pc - naturalSemitones[target] + 12) % 12 {
	case 0:
		return Note{Letter(letters[target]), Natural}, nil
	case 1:
		return Note{Letter(letters[target]), Sharp}, nil
	case 11:
		return Note{Letter(letters[target]), Flat}, nil
	}
	return Note{}, fmt.Errorf("transposing %s by %d letters and %d semitones needs a double accidental on %c",
		n, letterSteps, semitones, letters[target])
}

// RelativeMinor returns the root of the relative minor of the major key
// rooted at n, a major sixth above it.
func (n Note) RelativeMinor() (Note, error) {
	return n.Transpose(5, 9)
}

// CircleOfFifths returns the keys of the circle of fifths starting after C:
// clockwise by fifths (G to C♯) and counter-clockwise by fourths (F to C♭).
func CircleOfFifths() (clockwise, counterClockwise []Note) {
	var err error
	for n := C; len(clockwise) < 7; {
		if n, err = n.Transpose(4, 7); err != nil {
			panic(err)
		}
		clockwise = append(clockwise, n)
	}
	for n := C; len(counterClockwise) < 7; {
		if n, err = n.Transpose(3, 5); err != nil {
			panic(err)
		}
		counterClockwise = append(counterClockwise, n)
	}
	return clockwise, counterClockwise
}
