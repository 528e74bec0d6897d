package interpretation

import (
	"github.com/sammywachtel/harmonia-api/internal/analysis/chromatic"
	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
	"github.com/sammywachtel/harmonia-api/internal/analysis/modal"
)

// Type distinguishes the interpretation families the service can produce.
type Type string

const (
	TypeFunctional Type = "functional"
	TypeModal      Type = "modal"
	TypeChromatic  Type = "chromatic"
)

// PedagogicalLevel controls how readily alternatives are disclosed.
type PedagogicalLevel string

const (
	LevelBeginner     PedagogicalLevel = "beginner"
	LevelIntermediate PedagogicalLevel = "intermediate"
	LevelAdvanced     PedagogicalLevel = "advanced"
)

// defaults
const (
	DefaultConfidenceThreshold = 0.5
	DefaultMaxAlternatives     = 3
)

// Options carries the caller-tunable knobs for an analysis run.
type Options struct {
	ParentKey                    string           `json:"parent_key,omitempty"`
	PedagogicalLevel             PedagogicalLevel `json:"pedagogical_level,omitempty"`
	ConfidenceThreshold          float64          `json:"confidence_threshold,omitempty"`
	MaxAlternatives              int              `json:"max_alternatives,omitempty"`
	ForceMultipleInterpretations bool             `json:"force_multiple_interpretations,omitempty"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		PedagogicalLevel:    LevelIntermediate,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		MaxAlternatives:     DefaultMaxAlternatives,
	}
}

// withDefaults fills unset fields so zero-valued Options behave sensibly.
func (o Options) withDefaults() Options {
	if o.PedagogicalLevel == "" {
		o.PedagogicalLevel = LevelIntermediate
	}
	if o.ConfidenceThreshold == 0 {
		o.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if o.MaxAlternatives == 0 {
		o.MaxAlternatives = DefaultMaxAlternatives
	}
	return o
}

// EvidenceType classifies an analyzer observation after translation into the
// orchestrator's common vocabulary.
type EvidenceType string

const (
	EvidenceStructural  EvidenceType = "structural"
	EvidenceCadential   EvidenceType = "cadential"
	EvidenceIntervallic EvidenceType = "intervallic"
	EvidenceContextual  EvidenceType = "contextual"
	EvidenceHarmonic    EvidenceType = "harmonic"
)

// Evidence is a typed, weighted observation supporting one or more
// interpretation types. Fields are fixed at creation.
type Evidence struct {
	Type          EvidenceType `json:"type"`
	Strength      float64      `json:"strength"`
	Description   string       `json:"description"`
	Justification string       `json:"justification"`
	Supports      []Type       `json:"supports"`
}

// Interpretation is one complete reading of a progression. The per-type
// detail fields are explicit, possibly-nil variants rather than dynamically
// probed attributes: exactly one of Functional/Modal/Chromatic matches Type.
type Interpretation struct {
	Type          Type               `json:"type"`
	Confidence    float64            `json:"confidence"`
	Analysis      string             `json:"analysis"`
	Reasoning     string             `json:"reasoning"`
	RomanNumerals []string           `json:"roman_numerals"`
	KeySignature  string             `json:"key_signature"`
	Mode          string             `json:"mode,omitempty"`
	Evidence      []Evidence         `json:"evidence"`
	Functional    *functional.Result `json:"functional_detail,omitempty"`
	Modal         *modal.Result      `json:"modal_detail,omitempty"`
	Chromatic     *chromatic.Result  `json:"chromatic_detail,omitempty"`
}

// AlternativeAnalysis is a non-primary interpretation annotated with how it
// relates to the primary one.
type AlternativeAnalysis struct {
	Interpretation
	RelationshipToPrimary string `json:"relationship_to_primary"`
}

// Metadata describes how the result was produced.
type Metadata struct {
	TotalInterpretationsConsidered int              `json:"total_interpretations_considered"`
	ConfidenceThreshold            float64          `json:"confidence_threshold"`
	ShowAlternatives               bool             `json:"show_alternatives"`
	PedagogicalLevel               PedagogicalLevel `json:"pedagogical_level"`
	AnalysisTimeMS                 int64            `json:"analysis_time_ms"`
}

// Result is the ranked, explainable outcome of one analysis call.
type Result struct {
	Primary      Interpretation        `json:"primary_analysis"`
	Alternatives []AlternativeAnalysis `json:"alternative_analyses"`
	Metadata     Metadata              `json:"metadata"`
	InputChords  []string              `json:"input_chords"`
}
