package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sammywachtel/harmonia-api/internal/analysis/chromatic"
	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
	"github.com/sammywachtel/harmonia-api/internal/analysis/interpretation"
	"github.com/sammywachtel/harmonia-api/internal/analysis/modal"
	"github.com/sammywachtel/harmonia-api/internal/logger"
	"github.com/sammywachtel/harmonia-api/internal/metrics"
	"github.com/sammywachtel/harmonia-api/internal/services"
)

// AnalysisHandler serves the interpretation engine over HTTP.
type AnalysisHandler struct {
	service    *interpretation.Service
	history    *services.HistoryService
	cloudwatch *metrics.Client
}

func NewAnalysisHandler(service *interpretation.Service, history *services.HistoryService, cloudwatch *metrics.Client) *AnalysisHandler {
	return &AnalysisHandler{
		service:    service,
		history:    history,
		cloudwatch: cloudwatch,
	}
}

// AnalyzeRequest is the wire shape for all analysis endpoints.
type AnalyzeRequest struct {
	Chords                       []string `json:"chords" binding:"required"`
	ParentKey                    string   `json:"parent_key"`
	PedagogicalLevel             string   `json:"pedagogical_level"`
	ConfidenceThreshold          float64  `json:"confidence_threshold"`
	MaxAlternatives              int      `json:"max_alternatives"`
	ForceMultipleInterpretations bool     `json:"force_multiple_interpretations"`
}

func (r *AnalyzeRequest) options() interpretation.Options {
	return interpretation.Options{
		ParentKey:                    r.ParentKey,
		PedagogicalLevel:             interpretation.PedagogicalLevel(r.PedagogicalLevel),
		ConfidenceThreshold:          r.ConfidenceThreshold,
		MaxAlternatives:              r.MaxAlternatives,
		ForceMultipleInterpretations: r.ForceMultipleInterpretations,
	}
}

// Analyze runs the full interpretation pipeline.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := h.service.Analyze(c.Request.Context(), req.Chords, req.options())
	if err != nil {
		if errors.Is(err, interpretation.ErrEmptyProgression) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty progression: nothing to analyze"})
			return
		}
		logger.Error("Analysis failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "analysis failed",
			"request_id": c.GetString("request_id"),
		})
		return
	}

	duration := time.Since(start)
	logger.LogAnalysisRequest(len(req.Chords), string(result.Primary.Type),
		result.Primary.Confidence, duration, logger.WithContext(c))
	if h.cloudwatch != nil {
		h.cloudwatch.RecordAnalysis(string(result.Primary.Type), result.Primary.Confidence, duration)
	}

	if h.history.Enabled() {
		if err := h.history.Record(req.Chords, req.options(), result); err != nil {
			// History is best-effort; the analysis itself succeeded.
			logger.Warn("Failed to record analysis history", logger.Fields{"error": err.Error()})
		}
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeFunctional exposes the functional analyzer on its own.
func (h *AnalysisHandler) AnalyzeFunctional(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := functional.Analyze(req.Chords, req.ParentKey)
	if err != nil {
		if errors.Is(err, functional.ErrEmptyProgression) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty progression: nothing to analyze"})
			return
		}
		logger.Error("Functional analysis failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeModal exposes the modal analyzer on its own. A null body field means
// no modal interpretation survived.
func (h *AnalysisHandler) AnalyzeModal(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := modal.Analyze(req.Chords, req.ParentKey)
	if err != nil {
		if errors.Is(err, functional.ErrEmptyProgression) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty progression: nothing to analyze"})
			return
		}
		logger.Error("Modal analysis failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modal_analysis": result})
}

// AnalyzeChromatic runs the functional analyzer and classifies its chromatic
// findings. A null body field means the progression is fully diatonic.
func (h *AnalysisHandler) AnalyzeChromatic(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fr, err := functional.Analyze(req.Chords, req.ParentKey)
	if err != nil {
		if errors.Is(err, functional.ErrEmptyProgression) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty progression: nothing to analyze"})
			return
		}
		logger.Error("Chromatic analysis failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chromatic_analysis": chromatic.Classify(fr)})
}
