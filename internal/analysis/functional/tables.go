package functional

import "github.com/sammywachtel/harmonia-api/internal/theory"

// degree describes the expected diatonic chord at an interval above the key root.
type degree struct {
	Numeral  string
	Quality  theory.Quality
	Function HarmonicFunction
}

// majorDegrees maps diatonic intervals (semitones above the tonic) to the
// expected scale-degree chords of a major key.
var majorDegrees = map[int]degree{
	0:  {"I", theory.QualityMajor, FunctionTonic},
	2:  {"ii", theory.QualityMinor, FunctionPredominant},
	4:  {"iii", theory.QualityMinor, FunctionTonic},
	5:  {"IV", theory.QualityMajor, FunctionSubdominant},
	7:  {"V", theory.QualityMajor, FunctionDominant},
	9:  {"vi", theory.QualityMinor, FunctionTonic},
	11: {"vii°", theory.QualityDiminished, FunctionLeadingTone},
}

// minorDegrees covers natural minor, with the raised leading-tone dominant
// admitted as diatonic since it dominates actual minor-key practice.
var minorDegrees = map[int]degree{
	0:  {"i", theory.QualityMinor, FunctionTonic},
	2:  {"ii°", theory.QualityDiminished, FunctionPredominant},
	3:  {"III", theory.QualityMajor, FunctionTonic},
	5:  {"iv", theory.QualityMinor, FunctionSubdominant},
	7:  {"V", theory.QualityMajor, FunctionDominant},
	8:  {"VI", theory.QualityMajor, FunctionTonic},
	10: {"VII", theory.QualityMajor, FunctionSubdominant},
	11: {"vii°", theory.QualityDiminished, FunctionLeadingTone},
}

// secondaryDominantTargets maps the interval of a dominant-quality chord's root
// above the key root to the degree it tonicizes.
var secondaryDominantTargets = map[int]string{
	0:  "IV", // e.g. C7 in C major
	2:  "V",  // D7 -> G
	4:  "vi", // E7 -> Am
	9:  "ii", // A7 -> Dm
	11: "iii",
}

// chromaticNumerals labels non-diatonic intervals with accidental prefixes,
// relative to a major key. Minor keys reuse it for the intervals their degree
// table leaves open.
var chromaticNumerals = map[int]string{
	1:  "bII",
	3:  "bIII",
	4:  "#III", // only reachable in minor keys
	6:  "#IV",
	8:  "bVI",
	9:  "#VI", // only reachable in minor keys
	10: "bVII",
}

// cadenceStrengths assigns the fixed per-type strength from the cadence model.
var cadenceStrengths = map[CadenceType]float64{
	CadenceAuthentic: 0.9,
	CadencePhrygian:  0.8,
	CadencePlagal:    0.7,
	CadenceDeceptive: 0.6,
	CadenceHalf:      0.5,
}

func degreeTable(key theory.Key) map[int]degree {
	if key.Minor {
		return minorDegrees
	}
	return majorDegrees
}
