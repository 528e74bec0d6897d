// Package modal searches a chord progression for a modal tonal center
// (Ionian through Locrian) using structural tonic weighting, a data-driven
// table of modal patterns, typed evidence collection and explicit suppression
// of progressions that are better explained functionally.
package modal

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
	"github.com/sammywachtel/harmonia-api/internal/theory"
)

// scoring constants
const (
	patternBonusFactor    = 0.3
	structuralBonus       = 0.1
	diversityBonus        = 0.1
	foilConfidenceCap     = 0.3
	noHintConfidenceCap   = 0.65
	confidenceThreshold   = 0.4
	twoChordThreshold     = 0.25
	functionalVetoCutoff  = 0.8
	structuralFrameWeight = 0.8
	modalCadenceWeight    = 0.9
	modalIntervalWeight   = 0.7
	contextualWeight      = 0.6
)

// PatternMatch records a modal pattern found in the numeral sequence.
type PatternMatch struct {
	Pattern Pattern `json:"pattern"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
}

// Result is a modal interpretation of a progression.
type Result struct {
	Tonic          int            `json:"tonic"`
	TonicName      string         `json:"tonic_name"`
	Mode           string         `json:"mode"`
	ModeName       string         `json:"mode_name"` // e.g. "G Mixolydian"
	Numerals       []string       `json:"roman_numerals"`
	Evidence       []Evidence     `json:"evidence"`
	PatternMatches []PatternMatch `json:"pattern_matches"`
	Confidence     float64        `json:"confidence"`
	Explanation    string         `json:"explanation"`
}

// candidate carries the per-tonic analysis state through the pipeline.
type candidate struct {
	tonic      int
	numerals   []string
	normalized []string
	matches    []PatternMatch
	evidence   []Evidence
	confidence float64
	foil       string
}

// Analyze searches for a modal interpretation of the progression. It returns
// (nil, nil) when no modal reading survives: degenerate input, a functional
// pre-screen veto, a foil match, or a below-threshold score.
func Analyze(symbols []string, keyHint string) (*Result, error) {
	if len(symbols) == 0 {
		return nil, functional.ErrEmptyProgression
	}

	parsed := make([]*theory.Chord, len(symbols))
	for i, s := range symbols {
		if chord, err := theory.ParseChord(s); err == nil {
			parsed[i] = chord
		}
	}

	if degenerate(symbols, parsed) {
		return nil, nil
	}

	var hint *theory.Key
	if keyHint != "" {
		if key, err := theory.ParseKey(keyHint); err == nil {
			hint = &key
		}
	}

	// Pre-screen: ordinary cadential music under the hinted key is not modal.
	if hint != nil && functionalStrength(symbols, keyHint) > functionalVetoCutoff {
		return nil, nil
	}

	candidates := buildCandidates(symbols, parsed, hint)
	if len(candidates) == 0 {
		return nil, nil
	}

	// A single strongly-functional candidate disqualifies the whole
	// progression, not just that candidate.
	for _, c := range candidates {
		if c.foil != "" {
			for _, other := range candidates {
				if other.confidence > foilConfidenceCap {
					other.confidence = foilConfidenceCap
				}
			}
			break
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.confidence > best.confidence {
			best = c
		}
	}

	if hint == nil && best.confidence > noHintConfidenceCap {
		best.confidence = noHintConfidenceCap
	}

	threshold := confidenceThreshold
	if len(symbols) == 2 {
		threshold = twoChordThreshold
	}
	if best.confidence < threshold {
		return nil, nil
	}

	mode := chooseMode(best, parsed, hint)
	tonicName := theory.PitchClassName(best.tonic)

	return &Result{
		Tonic:          best.tonic,
		TonicName:      tonicName,
		Mode:           mode,
		ModeName:       tonicName + " " + mode,
		Numerals:       best.numerals,
		Evidence:       best.evidence,
		PatternMatches: best.matches,
		Confidence:     best.confidence,
		Explanation:    explain(best, tonicName, mode),
	}, nil
}

// degenerate rejects inputs with nothing to interpret: one chord, identical
// chords throughout, or nothing parseable.
func degenerate(symbols []string, parsed []*theory.Chord) bool {
	if len(symbols) < 2 {
		return true
	}
	if firstParsed(parsed) == nil {
		return true
	}
	firstSymbol := strings.TrimSpace(symbols[0])
	for _, s := range symbols[1:] {
		if strings.TrimSpace(s) != firstSymbol {
			return false
		}
	}
	return true
}

// functionalStrength tests the hinted-key numerals against known functional
// progressions and returns the strongest exact match.
func functionalStrength(symbols []string, keyHint string) float64 {
	fr, err := functional.Analyze(symbols, keyHint)
	if err != nil {
		return 0
	}
	joined := strings.Join(normalizeAll(fr.Numerals()), "-")
	return functionalProgressions[joined]
}

func buildCandidates(symbols []string, parsed []*theory.Chord, hint *theory.Key) []*candidate {
	var candidates []*candidate
	for _, tonic := range tonicCandidates(parsed, hint) {
		c := &candidate{tonic: tonic}
		c.numerals = numeralsRelative(parsed, tonic)
		c.normalized = normalizeAll(c.numerals)
		c.matches = matchPatterns(c.normalized)
		c.evidence = collectEvidence(symbols, parsed, c, hint)
		c.confidence = scoreCandidate(symbols, c)
		c.foil = foilProgressions[strings.Join(c.normalized, "-")]
		candidates = append(candidates, c)
	}
	return candidates
}

// modalNumeralBases maps each interval above the tonic to its accidental-
// prefixed Roman numeral.
var modalNumeralBases = [theory.PitchClassCount]string{
	"I", "bII", "II", "bIII", "III", "IV", "bV", "V", "bVI", "VI", "bVII", "VII",
}

func numeralsRelative(parsed []*theory.Chord, tonic int) []string {
	numerals := make([]string, len(parsed))
	for i, chord := range parsed {
		if chord == nil {
			numerals[i] = "?"
			continue
		}
		base := modalNumeralBases[theory.Interval(tonic, chord.Root)]
		numerals[i] = decorate(base, chord.Quality)
	}
	return numerals
}

// decorate lower-cases minor and diminished numerals, suffixes augmented with
// "+" and keeps sevenths visible.
func decorate(base string, quality theory.Quality) string {
	prefix := ""
	letters := base
	if strings.HasPrefix(base, "b") {
		prefix, letters = "b", base[1:]
	}
	switch quality {
	case theory.QualityMinor:
		return prefix + strings.ToLower(letters)
	case theory.QualityMinor7:
		return prefix + strings.ToLower(letters) + "7"
	case theory.QualityDiminished:
		return prefix + strings.ToLower(letters) + "°"
	case theory.QualityHalfDiminished:
		return prefix + strings.ToLower(letters) + "ø7"
	case theory.QualityAugmented:
		return prefix + letters + "+"
	case theory.QualityDominant7:
		return prefix + letters + "7"
	case theory.QualitySuspended:
		return prefix + letters + "sus"
	}
	return prefix + letters
}

// normalize strips seventh, suspension and diminished decorations so numerals
// can be compared against the pattern tables.
func normalize(numeral string) string {
	for _, suffix := range []string{"maj7", "ø7", "sus4", "sus2", "sus", "°", "7", "+"} {
		numeral = strings.TrimSuffix(numeral, suffix)
	}
	return numeral
}

func normalizeAll(numerals []string) []string {
	out := make([]string, len(numerals))
	for i, n := range numerals {
		out[i] = normalize(n)
	}
	return out
}

// matchPatterns tests every contiguous subsequence of length >= 2 against the
// modal pattern table.
func matchPatterns(normalized []string) []PatternMatch {
	var matches []PatternMatch
	for start := 0; start < len(normalized); start++ {
		for end := start + 2; end <= len(normalized); end++ {
			joined := strings.Join(normalized[start:end], "-")
			for _, p := range modalPatterns {
				if p.Sequence == joined {
					matches = append(matches, PatternMatch{Pattern: p, Start: start, End: end})
				}
			}
		}
	}
	return matches
}

func collectEvidence(symbols []string, parsed []*theory.Chord, c *candidate, hint *theory.Key) []Evidence {
	var evidence []Evidence
	tonicName := theory.PitchClassName(c.tonic)

	first := firstParsed(parsed)
	last := lastParsed(parsed)
	if first != nil && last != nil && first.Root == c.tonic && last.Root == c.tonic {
		evidence = append(evidence, Evidence{
			Type:          EvidenceStructural,
			Strength:      structuralFrameWeight,
			Description:   fmt.Sprintf("progression begins and ends on %s", tonicName),
			Justification: "framing a progression with the same chord is strong structural support for hearing it as the tonal center",
		})
	}

	if idx := cadenceIndex(c.normalized, "bVII"); idx >= 0 {
		evidence = append(evidence, Evidence{
			Type:          EvidenceCadential,
			Strength:      modalCadenceWeight,
			Description:   fmt.Sprintf("bVII-I cadence into %s", tonicName),
			Justification: "resolution from the lowered seventh degree avoids the leading tone, the defining Mixolydian close",
			Modes:         []string{ModeMixolydian, ModeAeolian},
		})
	}
	if idx := cadenceIndex(c.normalized, "bII"); idx >= 0 {
		evidence = append(evidence, Evidence{
			Type:          EvidenceCadential,
			Strength:      modalCadenceWeight,
			Description:   fmt.Sprintf("bII-i cadence into %s", tonicName),
			Justification: "the lowered second degree resolving to the tonic is the characteristic Phrygian close",
			Modes:         []string{ModePhrygian},
		})
	}

	if containsDegree(c.normalized, "bVII") {
		evidence = append(evidence, Evidence{
			Type:          EvidenceIntervallic,
			Strength:      modalIntervalWeight,
			Description:   "lowered seventh degree (bVII) present",
			Justification: "the subtonic replaces the leading tone in Mixolydian, Dorian and Aeolian",
			Modes:         []string{ModeMixolydian, ModeDorian, ModeAeolian},
		})
	}
	if containsDegree(c.normalized, "bII") {
		evidence = append(evidence, Evidence{
			Type:          EvidenceIntervallic,
			Strength:      modalIntervalWeight,
			Description:   "lowered second degree (bII) present",
			Justification: "the flat second scale degree occurs only in Phrygian and Locrian",
			Modes:         []string{ModePhrygian, ModeLocrian},
		})
	}

	if hint != nil && hint.Root != c.tonic {
		evidence = append(evidence, Evidence{
			Type:          EvidenceContextual,
			Strength:      contextualWeight,
			Description:   fmt.Sprintf("detected center %s differs from the supplied key %s", tonicName, hint.Name()),
			Justification: "a tonal center other than the notated key root suggests a mode of that key rather than the key itself",
		})
	}

	if len(symbols) == 2 {
		joined := strings.Join(c.normalized, "-")
		if vamp, ok := vampPatterns[joined]; ok {
			evidence = append(evidence, Evidence{
				Type:          EvidenceStructural,
				Strength:      vamp.Strength,
				Description:   fmt.Sprintf("%s vamp (%s)", vamp.Mode, joined),
				Justification: "a two-chord vamp establishes mode by oscillation rather than cadence",
				Modes:         []string{vamp.Mode},
			})
		}
	}

	return evidence
}

// cadenceIndex finds a degree that later resolves to the tonic, adjacent or
// across one intervening chord.
func cadenceIndex(normalized []string, degree string) int {
	for i, n := range normalized {
		if n != degree {
			continue
		}
		for j := i + 1; j < len(normalized) && j <= i+2; j++ {
			if normalized[j] == "I" || normalized[j] == "i" {
				return i
			}
		}
	}
	return -1
}

func containsDegree(normalized []string, degree string) bool {
	for _, n := range normalized {
		if n == degree {
			return true
		}
	}
	return false
}

// scoreCandidate fuses evidence and pattern matches into a confidence value:
// mean evidence strength, a bonus per pattern match scaled by the best match,
// structure and diversity bonuses, then idiom floors and the 1.0 cap.
func scoreCandidate(symbols []string, c *candidate) float64 {
	if len(c.evidence) == 0 && len(c.matches) == 0 {
		return 0
	}

	confidence := 0.0
	if len(c.evidence) > 0 {
		strengths := make([]float64, len(c.evidence))
		for i, e := range c.evidence {
			strengths[i] = e.Strength
		}
		confidence = stat.Mean(strengths, nil)
	}

	if len(c.matches) > 0 {
		best := 0.0
		for _, m := range c.matches {
			if m.Pattern.Strength > best {
				best = m.Pattern.Strength
			}
		}
		confidence += best * float64(len(c.matches)) * patternBonusFactor
	}

	if hasType(c.evidence, EvidenceStructural) {
		confidence += structuralBonus
	}
	if distinctTypes(c.evidence) >= 2 {
		confidence += diversityBonus
	}

	if floor, ok := confidenceFloors[strings.Join(c.normalized, "-")]; ok && confidence < floor {
		confidence = floor
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// chooseMode resolves the mode name through a priority ladder: tonic seventh
// quality, matched pattern modes, evidence discrimination, parent-key
// interval, then the Ionian/Aeolian fallback.
func chooseMode(c *candidate, parsed []*theory.Chord, hint *theory.Key) string {
	tonicChord := chordOnRoot(parsed, c.tonic)
	tonicMinor := tonicChord != nil && tonicChord.Quality.IsMinor()

	// (a) seventh-chord quality on the tonic
	if tonicChord != nil {
		if tonicChord.Quality == theory.QualityHalfDiminished {
			return ModeLocrian
		}
		if tonicChord.Quality == theory.QualityDominant7 && containsDegree(c.normalized, "IV") {
			return ModeMixolydian
		}
	}

	// (b) the strongest matched pattern's declared mode
	var bestMatch *PatternMatch
	for i := range c.matches {
		if bestMatch == nil || c.matches[i].Pattern.Strength > bestMatch.Pattern.Strength {
			bestMatch = &c.matches[i]
		}
	}
	if bestMatch != nil {
		modes := bestMatch.Pattern.Modes
		if len(modes) == 1 {
			return modes[0]
		}
		for _, mode := range modes {
			if minorMode(mode) == tonicMinor {
				return mode
			}
		}
		return modes[0]
	}

	// (c) evidence-based discrimination on characteristic degrees
	switch {
	case containsDegree(c.normalized, "bII"):
		return ModePhrygian
	case tonicMinor && containsDegree(c.normalized, "IV"):
		return ModeDorian
	case !tonicMinor && containsDegree(c.normalized, "II"):
		return ModeLydian
	case !tonicMinor && containsDegree(c.normalized, "bVII"):
		return ModeMixolydian
	case tonicMinor && containsDegree(c.normalized, "bVII"):
		return ModeAeolian
	}

	// (d) position of the tonic within the hinted parent key
	if hint != nil {
		parentRoot := hint.Root
		if hint.Minor {
			parentRoot = (hint.Root + 3) % theory.PitchClassCount // relative major
		}
		if mode, ok := parentModeByInterval[theory.Interval(parentRoot, c.tonic)]; ok {
			return mode
		}
	}

	// (e) fallback
	if tonicMinor {
		return ModeAeolian
	}
	return ModeIonian
}

func minorMode(mode string) bool {
	switch mode {
	case ModeDorian, ModePhrygian, ModeAeolian, ModeLocrian:
		return true
	}
	return false
}

func chordOnRoot(parsed []*theory.Chord, root int) *theory.Chord {
	for _, c := range parsed {
		if c != nil && c.Root == root {
			return c
		}
	}
	return nil
}

func explain(c *candidate, tonicName, mode string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s %s: %s", tonicName, mode, strings.Join(c.numerals, "-")))
	if len(c.matches) > 0 {
		best := c.matches[0]
		for _, m := range c.matches[1:] {
			if m.Pattern.Strength > best.Pattern.Strength {
				best = m
			}
		}
		parts = append(parts, fmt.Sprintf("matches the %s %s pattern", best.Pattern.Sequence,
			strings.Join(best.Pattern.Modes, "/")))
	}
	for _, e := range c.evidence {
		if e.Type == EvidenceCadential {
			parts = append(parts, e.Description)
			break
		}
	}
	return strings.Join(parts, "; ")
}
