package models

import (
	"strings"
	"time"
)

// AnalysisRecord is one persisted analysis-history row. The full result is
// not stored; it can always be recomputed from the chords and options.
type AnalysisRecord struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Chords       string    `gorm:"not null" json:"chords"` // space-separated symbols
	ParentKey    string    `json:"parent_key,omitempty"`
	PrimaryType  string    `gorm:"index" json:"primary_type"`
	Confidence   float64   `json:"confidence"`
	Alternatives int       `json:"alternatives"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChordList splits the stored symbols back into a slice.
func (r *AnalysisRecord) ChordList() []string {
	return strings.Fields(r.Chords)
}
