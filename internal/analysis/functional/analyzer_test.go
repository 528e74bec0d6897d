package functional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_TwoFiveOne(t *testing.T) {
	result, err := Analyze([]string{"Dm", "G7", "Cmaj7"}, "C major")
	require.NoError(t, err)

	assert.Equal(t, "C major", result.KeyName)
	assert.False(t, result.KeyInferred)
	assert.Equal(t, []string{"ii", "V7", "I"}, result.Numerals())
	assert.GreaterOrEqual(t, result.Confidence, 0.8)

	require.NotEmpty(t, result.Cadences)
	final := result.Cadences[len(result.Cadences)-1]
	assert.Equal(t, CadenceAuthentic, final.Type)
	assert.Equal(t, PositionPhraseEnding, final.Position)
	assert.InDelta(t, 0.9, final.Strength, 1e-9)
}

func TestAnalyze_KeyInference(t *testing.T) {
	tests := []struct {
		name             string
		chords           []string
		expectedKey      string
		expectedNumerals []string
	}{
		{
			name:             "outer chords agree",
			chords:           []string{"G", "C", "D", "G"},
			expectedKey:      "G major",
			expectedNumerals: []string{"I", "IV", "V", "I"},
		},
		{
			name:             "minor tonic frame",
			chords:           []string{"Am", "Dm", "E7", "Am"},
			expectedKey:      "A minor",
			expectedNumerals: []string{"i", "iv", "V7", "i"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(tt.chords, "")
			require.NoError(t, err)
			assert.True(t, result.KeyInferred)
			assert.Equal(t, tt.expectedKey, result.KeyName)
			assert.Equal(t, tt.expectedNumerals, result.Numerals())
		})
	}
}

func TestAnalyze_SecondaryDominant(t *testing.T) {
	result, err := Analyze([]string{"C", "D7", "G", "C"}, "C major")
	require.NoError(t, err)

	assert.Equal(t, []string{"I", "V7/V", "V", "I"}, result.Numerals())
	require.Len(t, result.ChromaticElements, 1)

	element := result.ChromaticElements[0]
	assert.Equal(t, ChromaticSecondaryDominant, element.Type)
	assert.Equal(t, "D7", element.Symbol)
	assert.Equal(t, "V7/V", element.Numeral)
	assert.Equal(t, "G", element.Resolution)
}

func TestAnalyze_BorrowedChord(t *testing.T) {
	result, err := Analyze([]string{"C", "Fm", "C"}, "C major")
	require.NoError(t, err)

	assert.Equal(t, []string{"I", "iv", "I"}, result.Numerals())
	require.Len(t, result.ChromaticElements, 1)
	assert.Equal(t, ChromaticBorrowedChord, result.ChromaticElements[0].Type)
	assert.Contains(t, result.ChromaticElements[0].Explanation, "parallel minor")
}

func TestAnalyze_Cadences(t *testing.T) {
	tests := []struct {
		name     string
		chords   []string
		keyHint  string
		expected CadenceType
	}{
		{name: "authentic", chords: []string{"F", "G7", "C"}, keyHint: "C major", expected: CadenceAuthentic},
		{name: "plagal", chords: []string{"C", "F", "C"}, keyHint: "C major", expected: CadencePlagal},
		{name: "deceptive", chords: []string{"C", "G7", "Am"}, keyHint: "C major", expected: CadenceDeceptive},
		{name: "half", chords: []string{"C", "F", "G"}, keyHint: "C major", expected: CadenceHalf},
		{name: "phrygian", chords: []string{"Am", "Bb", "Am"}, keyHint: "A minor", expected: CadencePhrygian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(tt.chords, tt.keyHint)
			require.NoError(t, err)
			require.NotEmpty(t, result.Cadences)

			final := result.Cadences[len(result.Cadences)-1]
			assert.Equal(t, tt.expected, final.Type)
			assert.Equal(t, PositionPhraseEnding, final.Position)
		})
	}
}

func TestAnalyze_StaticHarmony(t *testing.T) {
	result, err := Analyze([]string{"C", "C", "C"}, "C major")
	require.NoError(t, err)

	assert.Less(t, result.Confidence, 0.3)
	assert.Contains(t, result.Reasoning, "no harmonic motion")
}

func TestAnalyze_UnparseableChordKeptAsPlaceholder(t *testing.T) {
	result, err := Analyze([]string{"C", "Qx7", "G", "C"}, "C major")
	require.NoError(t, err)
	require.Len(t, result.Chords, 4)

	placeholder := result.Chords[1]
	assert.Equal(t, "?", placeholder.Numeral)
	assert.True(t, placeholder.Chromatic)
	assert.Equal(t, FunctionChromatic, placeholder.Function)
}

func TestAnalyze_EmptyProgression(t *testing.T) {
	_, err := Analyze(nil, "")
	assert.ErrorIs(t, err, ErrEmptyProgression)
}

func TestAnalyze_InvalidKeyHintIgnored(t *testing.T) {
	result, err := Analyze([]string{"G", "C", "G"}, "not a key")
	require.NoError(t, err)
	assert.True(t, result.KeyInferred)
	assert.Equal(t, "G major", result.KeyName)
}

func TestResult_DiatonicFraction(t *testing.T) {
	result, err := Analyze([]string{"C", "Fm", "G7", "C"}, "C major")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, result.DiatonicFraction(), 1e-9)
}
