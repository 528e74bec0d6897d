package modal

// PatternContext tells how a pattern functions within a phrase.
type PatternContext string

const (
	ContextStructural PatternContext = "structural"
	ContextCadential  PatternContext = "cadential"
)

// Mode names, brightest to darkest.
const (
	ModeIonian     = "Ionian"
	ModeDorian     = "Dorian"
	ModePhrygian   = "Phrygian"
	ModeLydian     = "Lydian"
	ModeMixolydian = "Mixolydian"
	ModeAeolian    = "Aeolian"
	ModeLocrian    = "Locrian"
)

// Pattern is a known modal progression shape over normalized Roman numerals.
type Pattern struct {
	Sequence string
	Modes    []string
	Strength float64
	Context  PatternContext
}

// modalPatterns is the rule table the matcher runs against. Sequences are
// normalized (no 7th/sus/dim suffixes) and matched over every contiguous
// subsequence of the candidate numerals.
var modalPatterns = []Pattern{
	{"I-bVII-IV-I", []string{ModeMixolydian}, 0.95, ContextStructural},
	{"I-bVII-I", []string{ModeMixolydian}, 0.90, ContextStructural},
	{"bVII-IV-I", []string{ModeMixolydian}, 0.85, ContextCadential},
	{"bVII-I", []string{ModeMixolydian}, 0.85, ContextCadential},
	{"i-bII-i", []string{ModePhrygian}, 0.95, ContextStructural},
	{"bII-i", []string{ModePhrygian}, 0.90, ContextCadential},
	{"i-bII", []string{ModePhrygian}, 0.80, ContextStructural},
	{"I-II-I", []string{ModeLydian}, 0.90, ContextStructural},
	{"I-II", []string{ModeLydian}, 0.80, ContextStructural},
	{"i-IV-i", []string{ModeDorian}, 0.90, ContextStructural},
	{"i-IV", []string{ModeDorian}, 0.80, ContextStructural},
	{"i-bVII-i", []string{ModeAeolian, ModeDorian}, 0.85, ContextStructural},
	{"i-bVII", []string{ModeAeolian}, 0.75, ContextStructural},
	{"i-bVI-bVII", []string{ModeAeolian}, 0.85, ContextStructural},
	{"bVI-bVII-i", []string{ModeAeolian}, 0.90, ContextCadential},
	{"I-IV-I", []string{ModeIonian, ModeMixolydian}, 0.75, ContextStructural},
	{"i°-bII", []string{ModeLocrian}, 0.85, ContextStructural},
}

// functionalProgressions are tonal-cadence shapes that veto modal analysis
// when a key hint places the progression squarely inside functional harmony.
var functionalProgressions = map[string]float64{
	"I-V-I":     0.90,
	"i-V-i":     0.90,
	"V-I":       0.85,
	"I-IV-V-I":  0.95,
	"i-iv-V-i":  0.95,
	"ii-V-I":    0.95,
	"ii-V-i":    0.90,
	"I-vi-IV-V": 0.90,
	"vi-IV-I-V": 0.90,
	"I-V-vi-IV": 0.85,
	"I-IV-V":    0.85,
	"I-ii-V-I":  0.90,
	"I-vi-ii-V": 0.90,
}

// foilProgressions superficially resemble modal shapes but are better read
// functionally. A match on any tonic candidate caps modal confidence for the
// whole progression.
var foilProgressions = map[string]string{
	"I-V-I":     "authentic cadence",
	"i-V-i":     "authentic cadence in minor",
	"V-I":       "authentic cadence",
	"I-IV-V-I":  "full functional cycle",
	"ii-V-I":    "ii-V-I cadence",
	"i-iv-i":    "minor plagal motion, contradicts the Dorian raised sixth",
	"i-II-i":    "major supertonic, contradicts the Phrygian lowered second",
	"I-vi-IV-V": "doo-wop cadence",
	"vi-IV-I-V": "pop cadence loop",
}

// vampPatterns give two-chord inputs their own evidence items, since a bare
// vamp carries modal color without any cadence to analyze.
var vampPatterns = map[string]struct {
	Mode     string
	Strength float64
}{
	"i-IV":   {ModeDorian, 0.8},
	"IV-i":   {ModeDorian, 0.75},
	"I-bVII": {ModeMixolydian, 0.8},
	"bVII-I": {ModeMixolydian, 0.8},
	"i-bII":  {ModePhrygian, 0.8},
	"bII-i":  {ModePhrygian, 0.8},
	"I-II":   {ModeLydian, 0.8},
	"i-bVII": {ModeAeolian, 0.75},
}

// confidenceFloors lift short idiomatic shapes that the mean-evidence score
// undervalues. Keys are the full normalized progression.
var confidenceFloors = map[string]float64{
	"i-IV":     0.72,
	"IV-i":     0.70,
	"I-bVII":   0.70,
	"bVII-I":   0.70,
	"i-bII":    0.70,
	"bII-i":    0.70,
	"I-II":     0.70,
	"i-bVII":   0.70,
	"I-IV-I":   0.75,
	"i-IV-i":   0.78,
	"I-bVII-I": 0.78,
}

// parentModeByInterval names the mode of a tonic that sits at the given
// interval above a major key's root.
var parentModeByInterval = map[int]string{
	0:  ModeIonian,
	2:  ModeDorian,
	4:  ModePhrygian,
	5:  ModeLydian,
	7:  ModeMixolydian,
	9:  ModeAeolian,
	11: ModeLocrian,
}
