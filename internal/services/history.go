package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sammywachtel/harmonia-api/internal/analysis/interpretation"
	"github.com/sammywachtel/harmonia-api/internal/models"
)

const defaultHistoryLimit = 50

// HistoryService records analyzed progressions. It is nil-safe: when the
// database is not configured every method is a no-op, so the engine never
// depends on persistence being available.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService wraps the database; db may be nil when history is disabled.
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Enabled reports whether history persistence is configured.
func (s *HistoryService) Enabled() bool {
	return s != nil && s.db != nil
}

// Record stores the outcome of one analysis.
func (s *HistoryService) Record(chords []string, opts interpretation.Options, result *interpretation.Result) error {
	if !s.Enabled() {
		return nil
	}

	record := models.AnalysisRecord{
		ID:           uuid.New().String(),
		Chords:       strings.Join(chords, " "),
		ParentKey:    opts.ParentKey,
		PrimaryType:  string(result.Primary.Type),
		Confidence:   result.Primary.Confidence,
		Alternatives: len(result.Alternatives),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return fmt.Errorf("record analysis: %w", err)
	}
	return nil
}

// List returns the most recent analyses, newest first.
func (s *HistoryService) List(limit int) ([]models.AnalysisRecord, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var records []models.AnalysisRecord
	err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return records, nil
}

// Get fetches a single record by ID.
func (s *HistoryService) Get(id string) (*models.AnalysisRecord, error) {
	if !s.Enabled() {
		return nil, gorm.ErrRecordNotFound
	}

	var record models.AnalysisRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
