// Package functional assigns Roman numerals, harmonic functions, cadences and
// chromatic elements to a chord progression relative to an inferred or supplied
// key center.
package functional

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sammywachtel/harmonia-api/internal/theory"
)

// ErrEmptyProgression is returned when there is nothing to analyze.
var ErrEmptyProgression = errors.New("empty chord progression")

// HarmonicFunction is the tonal role a chord plays within a key.
type HarmonicFunction string

const (
	FunctionTonic       HarmonicFunction = "tonic"
	FunctionPredominant HarmonicFunction = "predominant"
	FunctionSubdominant HarmonicFunction = "subdominant"
	FunctionDominant    HarmonicFunction = "dominant"
	FunctionLeadingTone HarmonicFunction = "leading_tone"
	FunctionChromatic   HarmonicFunction = "chromatic"
)

// CadenceType classifies a closing harmonic gesture.
type CadenceType string

const (
	CadenceAuthentic CadenceType = "authentic"
	CadencePlagal    CadenceType = "plagal"
	CadenceDeceptive CadenceType = "deceptive"
	CadenceHalf      CadenceType = "half"
	CadencePhrygian  CadenceType = "phrygian"
	CadenceModal     CadenceType = "modal"
)

// CadencePosition marks where in the phrase a cadence occurs.
type CadencePosition string

const (
	PositionPhraseEnding CadencePosition = "phrase_ending"
	PositionMidPhrase    CadencePosition = "mid_phrase"
)

// ChromaticType categorizes a non-diatonic chord.
type ChromaticType string

const (
	ChromaticSecondaryDominant ChromaticType = "secondary_dominant"
	ChromaticBorrowedChord     ChromaticType = "borrowed_chord"
	ChromaticMediant           ChromaticType = "chromatic_mediant"
	ChromaticAugmentedSixth    ChromaticType = "augmented_sixth"
	ChromaticNeapolitan        ChromaticType = "neapolitan"
)

// AnalyzedChord is a parsed chord plus its interpretation within the key.
// Chord is nil when the symbol could not be parsed; such chords are kept in
// place as maximally chromatic placeholders.
type AnalyzedChord struct {
	Symbol    string           `json:"symbol"`
	Chord     *theory.Chord    `json:"-"`
	Numeral   string           `json:"roman_numeral"`
	Function  HarmonicFunction `json:"function"`
	Chromatic bool             `json:"chromatic"`
}

// Cadence is a detected two-chord closing gesture.
type Cadence struct {
	Type     CadenceType     `json:"type"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Index    int             `json:"index"` // position of the first chord of the pair
	Strength float64         `json:"strength"`
	Position CadencePosition `json:"position"`
}

// ChromaticElement records a non-diatonic chord with its resolution, if any.
type ChromaticElement struct {
	Symbol      string        `json:"symbol"`
	Index       int           `json:"index"`
	Numeral     string        `json:"roman_numeral"`
	Type        ChromaticType `json:"type"`
	Resolution  string        `json:"resolution,omitempty"`
	Explanation string        `json:"explanation"`
}

// Result is the full functional analysis of a progression.
type Result struct {
	Key               theory.Key         `json:"-"`
	KeyName           string             `json:"key"`
	KeyInferred       bool               `json:"key_inferred"`
	Chords            []AnalyzedChord    `json:"chords"`
	Cadences          []Cadence          `json:"cadences"`
	ChromaticElements []ChromaticElement `json:"chromatic_elements"`
	Confidence        float64            `json:"confidence"`
	Reasoning         string             `json:"reasoning"`
}

// Numerals returns the Roman numerals in order.
func (r *Result) Numerals() []string {
	numerals := make([]string, len(r.Chords))
	for i, c := range r.Chords {
		numerals[i] = c.Numeral
	}
	return numerals
}

// DiatonicFraction is the share of chords that are diatonic to the key.
func (r *Result) DiatonicFraction() float64 {
	if len(r.Chords) == 0 {
		return 0
	}
	diatonic := 0
	for _, c := range r.Chords {
		if !c.Chromatic {
			diatonic++
		}
	}
	return float64(diatonic) / float64(len(r.Chords))
}

// Analyze performs functional harmonic analysis of the given chord symbols.
// keyHint, when non-empty and parseable (e.g. "C major"), fixes the key;
// otherwise the key is inferred from the outer chords, defaulting to C major.
func Analyze(symbols []string, keyHint string) (*Result, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyProgression
	}

	parsed := make([]*theory.Chord, len(symbols))
	for i, s := range symbols {
		chord, err := theory.ParseChord(s)
		if err != nil {
			continue // kept as placeholder below
		}
		parsed[i] = chord
	}

	key, inferred := determineKey(parsed, keyHint)

	result := &Result{
		Key:         key,
		KeyName:     key.Name(),
		KeyInferred: inferred,
	}

	for i, chord := range parsed {
		if chord == nil {
			result.Chords = append(result.Chords, AnalyzedChord{
				Symbol:    symbols[i],
				Numeral:   "?",
				Function:  FunctionChromatic,
				Chromatic: true,
			})
			continue
		}
		analyzed := analyzeChord(chord, key)
		result.Chords = append(result.Chords, analyzed)

		if element, ok := chromaticElement(analyzed, i, key); ok {
			if i+1 < len(symbols) {
				element.Resolution = symbols[i+1]
			}
			result.ChromaticElements = append(result.ChromaticElements, element)
		}
	}

	result.Cadences = detectCadences(result.Chords)
	result.Confidence, result.Reasoning = scoreConfidence(result)

	return result, nil
}

// determineKey resolves the analysis key: explicit hint first, then the
// outer-chord heuristic, then the C major default.
func determineKey(parsed []*theory.Chord, keyHint string) (theory.Key, bool) {
	if keyHint != "" {
		if key, err := theory.ParseKey(keyHint); err == nil {
			return key, false
		}
		// unparseable hint is ignored rather than fatal
	}

	first := parsed[0]
	last := parsed[len(parsed)-1]
	switch {
	case first != nil && last != nil && first.Root == last.Root:
		return theory.Key{Root: first.Root, Minor: first.Quality.IsMinor()}, true
	case first != nil:
		return theory.Key{Root: first.Root, Minor: first.Quality.IsMinor()}, true
	case last != nil:
		return theory.Key{Root: last.Root, Minor: last.Quality.IsMinor()}, true
	}
	return theory.Key{Root: 0, Minor: false}, true
}

// analyzeChord maps a chord onto a Roman numeral and harmonic function in key.
func analyzeChord(chord *theory.Chord, key theory.Key) AnalyzedChord {
	interval := theory.Interval(key.Root, chord.Root)
	table := degreeTable(key)

	// Secondary dominants take precedence over degree-table slots: a
	// dominant-seventh quality anywhere but the fifth degree is functioning
	// as the dominant of something else.
	if chord.Quality == theory.QualityDominant7 {
		if interval == 7 {
			return AnalyzedChord{Symbol: chord.Symbol, Chord: chord, Numeral: "V7", Function: FunctionDominant}
		}
		if target, ok := secondaryDominantTargets[interval]; ok {
			return AnalyzedChord{
				Symbol:    chord.Symbol,
				Chord:     chord,
				Numeral:   "V7/" + target,
				Function:  FunctionChromatic,
				Chromatic: true,
			}
		}
	}

	if deg, ok := table[interval]; ok {
		if qualityFits(chord.Quality, deg.Quality) {
			return AnalyzedChord{
				Symbol:   chord.Symbol,
				Chord:    chord,
				Numeral:  applySeventh(deg.Numeral, chord.Quality),
				Function: deg.Function,
			}
		}
		// Right scale degree, wrong quality: modal interchange.
		return AnalyzedChord{
			Symbol:    chord.Symbol,
			Chord:     chord,
			Numeral:   recase(deg.Numeral, chord.Quality),
			Function:  FunctionChromatic,
			Chromatic: true,
		}
	}

	base, ok := chromaticNumerals[interval]
	if !ok {
		base = fmt.Sprintf("?%d", interval)
	}
	return AnalyzedChord{
		Symbol:    chord.Symbol,
		Chord:     chord,
		Numeral:   recase(base, chord.Quality),
		Function:  FunctionChromatic,
		Chromatic: true,
	}
}

// qualityFits reports whether an actual chord quality can stand in for the
// expected diatonic quality of a degree.
func qualityFits(actual, expected theory.Quality) bool {
	switch expected {
	case theory.QualityMajor:
		return actual == theory.QualityMajor || actual == theory.QualityMajor7 ||
			actual == theory.QualitySuspended
	case theory.QualityMinor:
		return actual == theory.QualityMinor || actual == theory.QualityMinor7 ||
			actual == theory.QualitySuspended
	case theory.QualityDiminished:
		return actual == theory.QualityDiminished || actual == theory.QualityHalfDiminished
	}
	return actual == expected
}

// applySeventh decorates a diatonic numeral with its seventh where the chord
// carries one. Major sevenths keep the plain numeral: "Cmaj7" in C is still I.
func applySeventh(numeral string, quality theory.Quality) string {
	switch quality {
	case theory.QualityMinor7:
		return numeral + "7"
	case theory.QualityHalfDiminished:
		return strings.TrimSuffix(numeral, "°") + "ø7"
	}
	return numeral
}

// recase rewrites a numeral's letters to reflect the actual chord quality.
func recase(numeral string, quality theory.Quality) string {
	prefix := ""
	letters := numeral
	if strings.HasPrefix(numeral, "b") || strings.HasPrefix(numeral, "#") {
		prefix = numeral[:1]
		letters = numeral[1:]
	}
	letters = strings.TrimRight(letters, "°ø7+")

	switch {
	case quality.IsMinor():
		letters = strings.ToLower(letters)
		if quality == theory.QualityDiminished {
			letters += "°"
		}
		if quality == theory.QualityHalfDiminished {
			letters += "ø7"
		}
	case quality == theory.QualityAugmented:
		letters = strings.ToUpper(letters) + "+"
	default:
		letters = strings.ToUpper(letters)
	}
	return prefix + letters
}

// chromaticElement categorizes a chromatic chord for the element list.
func chromaticElement(ac AnalyzedChord, index int, key theory.Key) (ChromaticElement, bool) {
	if !ac.Chromatic || ac.Chord == nil {
		return ChromaticElement{}, false
	}

	interval := theory.Interval(key.Root, ac.Chord.Root)
	element := ChromaticElement{
		Symbol:  ac.Symbol,
		Index:   index,
		Numeral: ac.Numeral,
	}

	switch {
	case strings.HasPrefix(ac.Numeral, "V7/"):
		element.Type = ChromaticSecondaryDominant
		target := strings.TrimPrefix(ac.Numeral, "V7/")
		element.Explanation = fmt.Sprintf("%s functions as the dominant of the %s degree (%s)",
			ac.Symbol, target, ac.Numeral)
	case interval == 1 && ac.Chord.Quality == theory.QualityMajor:
		element.Type = ChromaticNeapolitan
		element.Explanation = fmt.Sprintf("%s is the Neapolitan chord (bII) in %s", ac.Symbol, key.Name())
	case ac.Chord.Quality == theory.QualityAugmented && interval == 8:
		element.Type = ChromaticAugmentedSixth
		element.Explanation = fmt.Sprintf("%s behaves as an augmented-sixth sonority in %s", ac.Symbol, key.Name())
	case borrowedFromParallel(ac.Chord, key):
		element.Type = ChromaticBorrowedChord
		element.Explanation = fmt.Sprintf("%s (%s) is borrowed from %s", ac.Symbol, ac.Numeral, parallelKeyName(key))
	case isMediantInterval(interval) && triadic(ac.Chord.Quality):
		element.Type = ChromaticMediant
		element.Explanation = fmt.Sprintf("%s is a chromatic mediant of the %s tonic", ac.Symbol, key.Name())
	default:
		element.Type = ChromaticBorrowedChord
		element.Explanation = fmt.Sprintf("%s (%s) lies outside %s", ac.Symbol, ac.Numeral, key.Name())
	}
	return element, true
}

// borrowedFromParallel reports whether the chord is diatonic to the parallel key.
func borrowedFromParallel(chord *theory.Chord, key theory.Key) bool {
	parallel := theory.Key{Root: key.Root, Minor: !key.Minor}
	interval := theory.Interval(parallel.Root, chord.Root)
	deg, ok := degreeTable(parallel)[interval]
	return ok && qualityFits(chord.Quality, deg.Quality)
}

func parallelKeyName(key theory.Key) string {
	if key.Minor {
		return "the parallel major"
	}
	return "the parallel minor"
}

func isMediantInterval(interval int) bool {
	return interval == 3 || interval == 4 || interval == 8 || interval == 9
}

func triadic(q theory.Quality) bool {
	return q == theory.QualityMajor || q == theory.QualityMinor
}

// detectCadences scans adjacent pairs for closing gestures. Only the final
// pair counts as phrase-ending.
func detectCadences(chords []AnalyzedChord) []Cadence {
	var cadences []Cadence
	for i := 0; i+1 < len(chords); i++ {
		from, to := chords[i], chords[i+1]
		position := PositionMidPhrase
		if i == len(chords)-2 {
			position = PositionPhraseEnding
		}

		cadenceType, ok := classifyCadence(from, to, position)
		if !ok {
			continue
		}
		cadences = append(cadences, Cadence{
			Type:     cadenceType,
			From:     from.Symbol,
			To:       to.Symbol,
			Index:    i,
			Strength: cadenceStrengths[cadenceType],
			Position: position,
		})
	}
	return cadences
}

func classifyCadence(from, to AnalyzedChord, position CadencePosition) (CadenceType, bool) {
	isTonic := to.Function == FunctionTonic && (to.Numeral == "I" || to.Numeral == "i")

	switch {
	case from.Function == FunctionDominant && isTonic:
		return CadenceAuthentic, true
	case from.Function == FunctionDominant && strings.EqualFold(to.Numeral, "vi"):
		return CadenceDeceptive, true
	case from.Function == FunctionSubdominant && isTonic:
		return CadencePlagal, true
	case strings.EqualFold(strings.TrimLeft(from.Numeral, "b"), "ii") &&
		strings.HasPrefix(from.Numeral, "b") && isTonic:
		return CadencePhrygian, true
	case position == PositionPhraseEnding && to.Function == FunctionDominant:
		return CadenceHalf, true
	}
	return "", false
}

// scoreConfidence combines the scoring terms in one place: static-harmony
// floor, cadence bonus and diatonic share.
func scoreConfidence(r *Result) (float64, string) {
	roots := map[int]bool{}
	for _, c := range r.Chords {
		if c.Chord != nil {
			roots[c.Chord.Root] = true
		}
	}
	if len(roots) <= 1 {
		return 0.25, fmt.Sprintf(
			"Static harmony on %s: the progression has no harmonic motion to support a functional reading.",
			r.Chords[0].Symbol)
	}

	confidence := 0.5
	if len(r.Cadences) > 0 {
		confidence += 0.3
	}
	confidence += r.DiatonicFraction() * 0.2
	if confidence > 1.0 {
		confidence = 1.0
	}

	reasoning := fmt.Sprintf("Analyzed in %s: %s", r.KeyName, strings.Join(r.Numerals(), "-"))
	if len(r.Cadences) > 0 {
		reasoning += fmt.Sprintf(", with a %s cadence into %s", r.Cadences[len(r.Cadences)-1].Type,
			r.Cadences[len(r.Cadences)-1].To)
	}
	if len(r.ChromaticElements) > 0 {
		reasoning += fmt.Sprintf("; %d chromatic element(s) detected", len(r.ChromaticElements))
	}
	return confidence, reasoning
}
