package modal

// EvidenceType classifies a modal observation.
type EvidenceType string

const (
	EvidenceStructural  EvidenceType = "structural"
	EvidenceCadential   EvidenceType = "cadential"
	EvidenceIntervallic EvidenceType = "intervallic"
	EvidenceContextual  EvidenceType = "contextual"
)

// Evidence is a single typed, weighted observation supporting a modal
// reading. Description and Justification are written at creation; no field
// ever embeds another evidence item's formatted text.
type Evidence struct {
	Type          EvidenceType `json:"type"`
	Strength      float64      `json:"strength"`
	Description   string       `json:"description"`
	Justification string       `json:"justification"`
	Modes         []string     `json:"modes,omitempty"`
}

// distinctTypes counts how many evidence kinds are present.
func distinctTypes(evidence []Evidence) int {
	seen := map[EvidenceType]bool{}
	for _, e := range evidence {
		seen[e.Type] = true
	}
	return len(seen)
}

func hasType(evidence []Evidence, t EvidenceType) bool {
	for _, e := range evidence {
		if e.Type == t {
			return true
		}
	}
	return false
}
