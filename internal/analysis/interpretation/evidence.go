package interpretation

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/sammywachtel/harmonia-api/internal/analysis/chromatic"
	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
	"github.com/sammywachtel/harmonia-api/internal/analysis/modal"
)

// evidenceWeights are the fixed per-type weights for confidence fusion.
// They are relative: the weighted average divides by the sum of the weights
// actually present.
var evidenceWeights = map[EvidenceType]float64{
	EvidenceCadential:   0.40,
	EvidenceStructural:  0.25,
	EvidenceIntervallic: 0.20,
	EvidenceHarmonic:    0.15,
	EvidenceContextual:  0.15,
}

// cadenceConfidence re-maps cadence kinds onto a common strength scale so
// functional and modal confidences stay comparable. The functional analyzer's
// own per-type strengths are not reused verbatim.
var cadenceConfidence = map[functional.CadenceType]float64{
	functional.CadenceAuthentic: 0.90,
	functional.CadencePhrygian:  0.80,
	functional.CadenceDeceptive: 0.70,
	functional.CadencePlagal:    0.65,
	functional.CadenceHalf:      0.50,
	functional.CadenceModal:     0.70,
}

const (
	patternEvidenceStrength = 0.95
	multiTypeBonus          = 0.1
)

// fuseConfidence computes the weighted-average confidence for an evidence
// list, plus the multi-type bonus, capped at 1.0.
func fuseConfidence(evidence []Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}

	strengths := make([]float64, len(evidence))
	weights := make([]float64, len(evidence))
	types := map[EvidenceType]bool{}
	for i, e := range evidence {
		strengths[i] = e.Strength
		weights[i] = evidenceWeights[e.Type]
		types[e.Type] = true
	}

	confidence := stat.Mean(strengths, weights)
	if len(types) >= 2 {
		confidence += multiTypeBonus
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// functionalEvidence translates a functional analysis into orchestrator
// evidence: one cadential item per cadence, a harmonic-coherence item carrying
// the analyzer's own confidence, a structural item for recognized idioms, and
// a contextual item when the caller anchored the key.
func functionalEvidence(fr *functional.Result, keyHinted bool) []Evidence {
	var evidence []Evidence

	for _, cadence := range fr.Cadences {
		evidence = append(evidence, Evidence{
			Type:          EvidenceCadential,
			Strength:      cadenceConfidence[cadence.Type],
			Description:   fmt.Sprintf("%s cadence %s-%s", cadence.Type, cadence.From, cadence.To),
			Justification: "cadences are the strongest markers of functional tonal organization",
			Supports:      []Type{TypeFunctional},
		})
	}

	evidence = append(evidence, Evidence{
		Type:          EvidenceHarmonic,
		Strength:      fr.Confidence,
		Description:   fmt.Sprintf("harmonic coherence in %s", fr.KeyName),
		Justification: "diatonic membership and cadential motion within a single key support a functional reading",
		Supports:      []Type{TypeFunctional},
	})

	if idiom, ok := recognizeIdiom(fr.Numerals()); ok {
		evidence = append(evidence, Evidence{
			Type:          EvidenceStructural,
			Strength:      patternEvidenceStrength,
			Description:   fmt.Sprintf("%s pattern recognized", idiom),
			Justification: "well-known functional idioms strongly favor the functional interpretation",
			Supports:      []Type{TypeFunctional},
		})
	}

	if keyHinted && !fr.KeyInferred {
		evidence = append(evidence, Evidence{
			Type:          EvidenceContextual,
			Strength:      0.6,
			Description:   fmt.Sprintf("analysis anchored to the supplied key %s", fr.KeyName),
			Justification: "a caller-supplied key removes tonal-center ambiguity",
			Supports:      []Type{TypeFunctional},
		})
	}

	return evidence
}

// modalEvidence translates the modal analyzer's native evidence records.
// Types align one-to-one; no re-weighting happens here.
func modalEvidence(mr *modal.Result) []Evidence {
	evidence := make([]Evidence, 0, len(mr.Evidence))
	for _, e := range mr.Evidence {
		evidence = append(evidence, Evidence{
			Type:          EvidenceType(e.Type),
			Strength:      e.Strength,
			Description:   e.Description,
			Justification: e.Justification,
			Supports:      []Type{TypeModal},
		})
	}
	return evidence
}

// chromaticEvidence builds evidence for a chromatic-led interpretation from
// the classifier's grouped elements.
func chromaticEvidence(cr *chromatic.Result) []Evidence {
	var evidence []Evidence

	evidence = append(evidence, Evidence{
		Type:          EvidenceHarmonic,
		Strength:      0.5 + cr.Complexity/2,
		Description:   cr.Summary(),
		Justification: "the density of chromatic vocabulary measures how far the progression leaves its diatonic frame",
		Supports:      []Type{TypeChromatic},
	})

	for _, pattern := range cr.ResolutionPatterns {
		if pattern.Strength != chromatic.ResolutionStrong {
			continue
		}
		evidence = append(evidence, Evidence{
			Type:          EvidenceCadential,
			Strength:      0.85,
			Description:   fmt.Sprintf("%s resolves down a fifth to %s", pattern.From, pattern.To),
			Justification: "a chromatic dominant resolving by descending fifth behaves as a local cadence",
			Supports:      []Type{TypeChromatic},
		})
	}

	if cr.LeadWithChromatic() {
		evidence = append(evidence, Evidence{
			Type:          EvidenceStructural,
			Strength:      0.8,
			Description:   "chromatic vocabulary is prominent enough to headline the analysis",
			Justification: "multiple borrowed or tonicizing chords reshape the harmonic narrative",
			Supports:      []Type{TypeChromatic},
		})
	}

	return evidence
}

// describeEvidence renders a short trace of the evidence list for reasoning text.
func describeEvidence(evidence []Evidence) string {
	parts := make([]string, 0, len(evidence))
	for _, e := range evidence {
		parts = append(parts, fmt.Sprintf("%s (%.2f)", e.Description, e.Strength))
	}
	return strings.Join(parts, "; ")
}
