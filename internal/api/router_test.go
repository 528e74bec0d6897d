package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammywachtel/harmonia-api/internal/config"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Environment:   "test",
		AuthMode:      "none",
		CacheCapacity: 16,
		CacheTTL:      time.Minute,
	}
	return SetupRouter(nil, cfg, nil, "test")
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	history, ok := body["history"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "disabled", history["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["version"])
	assert.Contains(t, body, "system")
	assert.Contains(t, body, "engine")
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/analyze", map[string]any{
		"chords":     []string{"Dm", "G7", "Cmaj7"},
		"parent_key": "C major",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Primary struct {
			Type          string   `json:"type"`
			Confidence    float64  `json:"confidence"`
			RomanNumerals []string `json:"roman_numerals"`
		} `json:"primary_analysis"`
		InputChords []string `json:"input_chords"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "functional", body.Primary.Type)
	assert.GreaterOrEqual(t, body.Primary.Confidence, 0.8)
	assert.Equal(t, []string{"ii", "V7", "I"}, body.Primary.RomanNumerals)
	assert.Equal(t, []string{"Dm", "G7", "Cmaj7"}, body.InputChords)
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing chords", body: map[string]any{"parent_key": "C major"}},
		{name: "empty chords", body: map[string]any{"chords": []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/v1/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// malformed JSON body
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeFunctionalEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/analyze/functional", map[string]any{
		"chords":     []string{"C", "F", "G7", "C"},
		"parent_key": "C major",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Key    string `json:"key"`
		Chords []any  `json:"chords"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "C major", body.Key)
	assert.Len(t, body.Chords, 4)
}

func TestAnalyzeModalEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/analyze/modal", map[string]any{
		"chords":     []string{"G", "F", "C", "G"},
		"parent_key": "C major",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Modal *struct {
			ModeName string `json:"mode_name"`
		} `json:"modal_analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Modal)
	assert.Equal(t, "G Mixolydian", body.Modal.ModeName)

	// A plainly functional progression yields a null modal analysis.
	w = postJSON(t, router, "/api/v1/analyze/modal", map[string]any{
		"chords": []string{"C", "G", "C"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body.Modal = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Modal)
}

func TestAnalyzeChromaticEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/analyze/chromatic", map[string]any{
		"chords":     []string{"C", "A7", "Dm", "G7", "C"},
		"parent_key": "C major",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Chromatic *struct {
			SecondaryDominants []any `json:"secondary_dominants"`
		} `json:"chromatic_analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Chromatic)
	assert.Len(t, body.Chromatic.SecondaryDominants, 1)
}

func TestRequestIDHeader(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
