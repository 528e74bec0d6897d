package theory

import (
	"fmt"
	"regexp"
	"strings"
)

// Quality classifies the basic sonority of a chord.
type Quality string

const (
	QualityMajor          Quality = "major"
	QualityMinor          Quality = "minor"
	QualityDominant7      Quality = "dominant7"
	QualityMajor7         Quality = "major7"
	QualityMinor7         Quality = "minor7"
	QualityDiminished     Quality = "diminished"
	QualityHalfDiminished Quality = "half_diminished"
	QualityAugmented      Quality = "augmented"
	QualitySuspended      Quality = "suspended"
)

// IsMinor reports whether the quality has a minor third above the root.
func (q Quality) IsMinor() bool {
	switch q {
	case QualityMinor, QualityMinor7, QualityDiminished, QualityHalfDiminished:
		return true
	}
	return false
}

// HasSeventh reports whether the quality includes a seventh.
func (q Quality) HasSeventh() bool {
	switch q {
	case QualityDominant7, QualityMajor7, QualityMinor7, QualityHalfDiminished:
		return true
	}
	return false
}

// Chord is a parsed chord symbol. Immutable once created.
type Chord struct {
	Symbol     string
	Root       int
	Quality    Quality
	Bass       int // pitch class of the bass note, -1 when the root is in the bass
	Extensions []string
}

// chordSymbolRegex splits a symbol into root, quality/extension suffix and
// optional slash bass: "F#m7b5/A" -> "F#", "m7b5", "A"
var chordSymbolRegex = regexp.MustCompile(`^([A-G][#b]?)([^/]*)(?:/([A-G][#b]?))?$`)

// qualitySuffixes maps the leading portion of a chord suffix to a quality.
// Longer suffixes are listed first so "maj7" wins over "m".
var qualitySuffixes = []struct {
	suffix  string
	quality Quality
}{
	{"maj7", QualityMajor7},
	{"maj9", QualityMajor7},
	{"M7", QualityMajor7},
	{"maj", QualityMajor},
	{"m7b5", QualityHalfDiminished},
	{"min7b5", QualityHalfDiminished},
	{"ø7", QualityHalfDiminished},
	{"ø", QualityHalfDiminished},
	{"dim7", QualityDiminished},
	{"dim", QualityDiminished},
	{"°7", QualityDiminished},
	{"°", QualityDiminished},
	{"m7", QualityMinor7},
	{"min7", QualityMinor7},
	{"m9", QualityMinor7},
	{"m11", QualityMinor7},
	{"min", QualityMinor},
	{"m", QualityMinor},
	{"aug", QualityAugmented},
	{"+", QualityAugmented},
	{"sus2", QualitySuspended},
	{"sus4", QualitySuspended},
	{"sus", QualitySuspended},
	{"13", QualityDominant7},
	{"11", QualityDominant7},
	{"9", QualityDominant7},
	{"7", QualityDominant7},
	{"6", QualityMajor},
	{"add9", QualityMajor},
	{"M", QualityMajor},
	{"5", QualityMajor},
}

// extensionRegex captures trailing extension/alteration tokens like "b9", "#11", "13"
var extensionRegex = regexp.MustCompile(`(b5|#5|b9|#9|#11|b13|add9|sus2|sus4|6|9|11|13)`)

// ParseChord parses a chord symbol such as "Am", "G7", "Cmaj7", "F#m7b5" or "C/E".
// Unrecognized symbols return an error; callers that tolerate bad input degrade
// to a placeholder chromatic chord instead of aborting.
func ParseChord(symbol string) (*Chord, error) {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return nil, fmt.Errorf("empty chord symbol")
	}

	m := chordSymbolRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, fmt.Errorf("unparseable chord symbol: %q", symbol)
	}

	root, err := PitchClass(m[1])
	if err != nil {
		return nil, fmt.Errorf("unparseable chord symbol %q: %w", symbol, err)
	}

	quality, rest, err := parseQuality(m[2])
	if err != nil {
		return nil, fmt.Errorf("unparseable chord symbol %q: %w", symbol, err)
	}

	bass := -1
	if m[3] != "" {
		if bass, err = PitchClass(m[3]); err != nil {
			return nil, fmt.Errorf("unparseable chord symbol %q: %w", symbol, err)
		}
		if bass == root {
			bass = -1
		}
	}

	return &Chord{
		Symbol:     trimmed,
		Root:       root,
		Quality:    quality,
		Bass:       bass,
		Extensions: extensionRegex.FindAllString(rest, -1),
	}, nil
}

func parseQuality(suffix string) (Quality, string, error) {
	if suffix == "" {
		return QualityMajor, "", nil
	}
	for _, entry := range qualitySuffixes {
		if strings.HasPrefix(suffix, entry.suffix) {
			return entry.quality, suffix[len(entry.suffix):], nil
		}
	}
	return "", "", fmt.Errorf("unknown chord quality suffix: %q", suffix)
}

// BassName returns the bass note name for slash chords, or "" when the root
// is in the bass.
func (c *Chord) BassName() string {
	if c.Bass < 0 {
		return ""
	}
	return PitchClassName(c.Bass)
}

// RootName returns the name of the chord root.
func (c *Chord) RootName() string {
	return PitchClassName(c.Root)
}
