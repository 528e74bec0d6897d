package theory

import (
	"fmt"
	"strings"
)

// Pitch classes are semitone offsets from C (0-11).
const PitchClassCount = 12

// noteToPitchClass maps note names (with sharps/flats) to pitch classes
var noteToPitchClass = map[string]int{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D": 2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"F": 5, "E#": 5,
	"F#": 6, "Gb": 6,
	"G": 7,
	"G#": 8, "Ab": 8,
	"A": 9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

// pitchClassNames uses sharp spellings, matching how chord symbols
// are most commonly written in lead sheets
var pitchClassNames = [PitchClassCount]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// PitchClass resolves a note name ("C", "F#", "Bb") to a pitch class (0-11).
func PitchClass(name string) (int, error) {
	pc, ok := noteToPitchClass[name]
	if !ok {
		return 0, fmt.Errorf("unknown note name: %q", name)
	}
	return pc, nil
}

// PitchClassName returns the sharp-spelled name of a pitch class.
func PitchClassName(pc int) string {
	return pitchClassNames[((pc%PitchClassCount)+PitchClassCount)%PitchClassCount]
}

// Interval returns the semitone distance from one pitch class up to another (0-11).
func Interval(from, to int) int {
	return ((to-from)%PitchClassCount + PitchClassCount) % PitchClassCount
}

// Key is a tonal center with a major/minor mode.
type Key struct {
	Root  int
	Minor bool
}

// Name renders the key as "C major" / "A minor".
func (k Key) Name() string {
	if k.Minor {
		return PitchClassName(k.Root) + " minor"
	}
	return PitchClassName(k.Root) + " major"
}

// ParseKey parses key names like "C major", "A minor", "Bb Major", "f# minor".
func ParseKey(s string) (Key, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 || len(fields) > 2 {
		return Key{}, fmt.Errorf("invalid key name: %q", s)
	}

	note := fields[0]
	if len(note) > 0 {
		note = strings.ToUpper(note[:1]) + note[1:]
	}
	root, err := PitchClass(note)
	if err != nil {
		return Key{}, fmt.Errorf("invalid key name %q: %w", s, err)
	}

	minor := false
	if len(fields) == 2 {
		switch strings.ToLower(fields[1]) {
		case "major", "maj":
		case "minor", "min":
			minor = true
		default:
			return Key{}, fmt.Errorf("invalid key mode in %q", s)
		}
	}
	return Key{Root: root, Minor: minor}, nil
}
