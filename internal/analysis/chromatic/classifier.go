// Package chromatic groups the chromatic findings of a functional analysis
// into explainable categories. It is a pure post-processor: same input, same
// output, no state.
package chromatic

import (
	"fmt"

	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
	"github.com/sammywachtel/harmonia-api/internal/theory"
)

// ResolutionStrength classifies how convincingly a chromatic chord resolves.
type ResolutionStrength string

const (
	ResolutionStrong    ResolutionStrength = "strong"
	ResolutionWeak      ResolutionStrength = "weak"
	ResolutionDeceptive ResolutionStrength = "deceptive"
)

// SecondaryDominant is a dominant of a non-tonic degree, with its resolution.
type SecondaryDominant struct {
	Symbol      string `json:"symbol"`
	Numeral     string `json:"roman_numeral"`
	Target      string `json:"target"`
	Resolution  string `json:"resolution,omitempty"`
	Explanation string `json:"explanation"`
}

// BorrowedChord is a chord drawn from the parallel key.
type BorrowedChord struct {
	Symbol      string `json:"symbol"`
	Numeral     string `json:"roman_numeral"`
	Source      string `json:"source"`
	Explanation string `json:"explanation"`
}

// ChromaticMediant is a third-related chord outside the key.
type ChromaticMediant struct {
	Symbol      string `json:"symbol"`
	Numeral     string `json:"roman_numeral"`
	Explanation string `json:"explanation"`
}

// ResolutionPattern is an explicit from->to pair with its strength class.
type ResolutionPattern struct {
	From     string             `json:"from"`
	To       string             `json:"to"`
	Strength ResolutionStrength `json:"strength"`
}

// complexity weights per element category
const (
	secondaryDominantWeight = 0.2
	borrowedChordWeight     = 0.15
	chromaticMediantWeight  = 0.25
	resolutionWeight        = 0.1
)

// Result groups a progression's chromatic vocabulary.
type Result struct {
	SecondaryDominants []SecondaryDominant `json:"secondary_dominants"`
	BorrowedChords     []BorrowedChord     `json:"borrowed_chords"`
	ChromaticMediants  []ChromaticMediant  `json:"chromatic_mediants"`
	ResolutionPatterns []ResolutionPattern `json:"resolution_patterns"`
	Complexity         float64             `json:"complexity"`
}

// LeadWithChromatic reports whether the chromatic vocabulary is prominent
// enough that it should headline the interpretation.
func (r *Result) LeadWithChromatic() bool {
	return len(r.SecondaryDominants) >= 1 ||
		len(r.BorrowedChords) > 1 ||
		len(r.ChromaticMediants) >= 1
}

// Classify groups the chromatic elements of a functional analysis. It returns
// nil when the progression contains no chromatic elements at all.
func Classify(fr *functional.Result) *Result {
	if fr == nil || len(fr.ChromaticElements) == 0 {
		return nil
	}

	result := &Result{}
	for _, element := range fr.ChromaticElements {
		switch element.Type {
		case functional.ChromaticSecondaryDominant:
			sd := SecondaryDominant{
				Symbol:      element.Symbol,
				Numeral:     element.Numeral,
				Target:      element.Numeral[len("V7/"):],
				Resolution:  element.Resolution,
				Explanation: element.Explanation,
			}
			result.SecondaryDominants = append(result.SecondaryDominants, sd)
			if element.Resolution != "" {
				result.ResolutionPatterns = append(result.ResolutionPatterns, ResolutionPattern{
					From:     element.Symbol,
					To:       element.Resolution,
					Strength: resolutionStrength(element.Symbol, element.Resolution),
				})
			}
		case functional.ChromaticBorrowedChord, functional.ChromaticNeapolitan,
			functional.ChromaticAugmentedSixth:
			result.BorrowedChords = append(result.BorrowedChords, BorrowedChord{
				Symbol:      element.Symbol,
				Numeral:     element.Numeral,
				Source:      borrowSource(fr.Key.Minor),
				Explanation: element.Explanation,
			})
		case functional.ChromaticMediant:
			result.ChromaticMediants = append(result.ChromaticMediants, ChromaticMediant{
				Symbol:      element.Symbol,
				Numeral:     element.Numeral,
				Explanation: element.Explanation,
			})
		}
	}

	result.Complexity = complexityScore(result)
	return result
}

func borrowSource(keyIsMinor bool) string {
	if keyIsMinor {
		return "parallel major"
	}
	return "parallel minor"
}

// resolutionStrength rates a secondary dominant's resolution: down a perfect
// fifth is strong, stepwise is deceptive, anything else weak.
func resolutionStrength(from, to string) ResolutionStrength {
	fromChord, err1 := theory.ParseChord(from)
	toChord, err2 := theory.ParseChord(to)
	if err1 != nil || err2 != nil {
		return ResolutionWeak
	}
	switch theory.Interval(fromChord.Root, toChord.Root) {
	case 5: // up a fourth = down a fifth
		return ResolutionStrong
	case 1, 2, 10, 11:
		return ResolutionDeceptive
	}
	return ResolutionWeak
}

func complexityScore(r *Result) float64 {
	score := secondaryDominantWeight*float64(len(r.SecondaryDominants)) +
		borrowedChordWeight*float64(len(r.BorrowedChords)) +
		chromaticMediantWeight*float64(len(r.ChromaticMediants)) +
		resolutionWeight*float64(len(r.ResolutionPatterns))
	if score > 1.0 {
		return 1.0
	}
	return score
}

// Summary renders a one-line description of the chromatic content.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d secondary dominant(s), %d borrowed chord(s), %d chromatic mediant(s)",
		len(r.SecondaryDominants), len(r.BorrowedChords), len(r.ChromaticMediants))
}
