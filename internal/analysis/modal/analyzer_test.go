package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
)

func TestAnalyze_Mixolydian(t *testing.T) {
	result, err := Analyze([]string{"G", "F", "C", "G"}, "C major")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "G", result.TonicName)
	assert.Equal(t, ModeMixolydian, result.Mode)
	assert.Equal(t, "G Mixolydian", result.ModeName)
	assert.Equal(t, []string{"I", "bVII", "IV", "I"}, result.Numerals)
	assert.GreaterOrEqual(t, result.Confidence, 0.4)

	var cadential bool
	for _, e := range result.Evidence {
		if e.Type == EvidenceCadential {
			cadential = true
			assert.Contains(t, e.Description, "bVII-I cadence into G")
		}
	}
	assert.True(t, cadential, "expected cadential evidence for the bVII-I close")
	assert.NotEmpty(t, result.PatternMatches)
}

func TestAnalyze_FunctionalFoilRejected(t *testing.T) {
	// I-V-I is an authentic cadence, not a mode.
	result, err := Analyze([]string{"C", "G", "C"}, "")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestAnalyze_FunctionalPreScreenVeto(t *testing.T) {
	// A hinted ii-V-I is squarely functional; no modal reading should survive.
	result, err := Analyze([]string{"Dm", "G7", "Cmaj7"}, "C major")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestAnalyze_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name   string
		chords []string
	}{
		{name: "single chord", chords: []string{"C"}},
		{name: "static harmony", chords: []string{"C", "C", "C"}},
		{name: "nothing parseable", chords: []string{"??", "!!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(tt.chords, "")
			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestAnalyze_DorianVamp(t *testing.T) {
	result, err := Analyze([]string{"Am", "D"}, "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "A", result.TonicName)
	assert.Equal(t, ModeDorian, result.Mode)
	assert.Equal(t, []string{"i", "IV"}, result.Numerals)
	assert.GreaterOrEqual(t, result.Confidence, 0.25)
	// Without a key hint the confidence stays capped.
	assert.LessOrEqual(t, result.Confidence, 0.65)
}

func TestAnalyze_Phrygian(t *testing.T) {
	result, err := Analyze([]string{"Em", "F", "Em"}, "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "E Phrygian", result.ModeName)
	assert.Equal(t, []string{"i", "bII", "i"}, result.Numerals)
}

func TestAnalyze_LocrianTonicSeventhWinsOverPatterns(t *testing.T) {
	// A half-diminished tonic names Locrian even though i-bII also matches
	// the Phrygian pattern table.
	result, err := Analyze([]string{"Bm7b5", "C"}, "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "B", result.TonicName)
	assert.Equal(t, ModeLocrian, result.Mode)
}

func TestAnalyze_AeolianVamp(t *testing.T) {
	result, err := Analyze([]string{"Am", "G"}, "")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, ModeAeolian, result.Mode)
	assert.Equal(t, []string{"i", "bVII"}, result.Numerals)
}

func TestAnalyze_EmptyProgression(t *testing.T) {
	_, err := Analyze(nil, "")
	assert.ErrorIs(t, err, functional.ErrEmptyProgression)
}

func TestAnalyze_InvalidKeyHintIgnored(t *testing.T) {
	result, err := Analyze([]string{"G", "F", "C", "G"}, "Z sharp")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, ModeMixolydian, result.Mode)
}
