package interpretation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_TwoFiveOnePrimaryFunctional(t *testing.T) {
	service := NewService()
	result, err := service.Analyze(context.Background(), []string{"Dm", "G7", "Cmaj7"}, Options{ParentKey: "C major"})
	require.NoError(t, err)

	assert.Equal(t, TypeFunctional, result.Primary.Type)
	assert.GreaterOrEqual(t, result.Primary.Confidence, 0.8)
	assert.Equal(t, []string{"ii", "V7", "I"}, result.Primary.RomanNumerals)
	assert.Equal(t, "C major", result.Primary.KeySignature)

	var structural bool
	for _, e := range result.Primary.Evidence {
		assert.GreaterOrEqual(t, e.Strength, 0.0)
		assert.LessOrEqual(t, e.Strength, 1.0)
		if e.Type == EvidenceStructural {
			structural = true
			assert.Contains(t, e.Description, "ii-V-I")
		}
	}
	assert.True(t, structural, "expected the ii-V-I idiom to register as structural evidence")

	// The modal analyzer vetoes this progression; nothing else competes.
	assert.Empty(t, result.Alternatives)
	assert.False(t, result.Metadata.ShowAlternatives)
}

func TestAnalyze_MixolydianPrimaryModal(t *testing.T) {
	service := NewService()
	result, err := service.Analyze(context.Background(), []string{"G", "F", "C", "G"}, Options{ParentKey: "C major"})
	require.NoError(t, err)

	assert.Equal(t, TypeModal, result.Primary.Type)
	assert.Equal(t, "G Mixolydian", result.Primary.Mode)
	assert.Equal(t, []string{"I", "bVII", "IV", "I"}, result.Primary.RomanNumerals)

	// The functional reading survives as a disclosed alternative: the two
	// confidences are close enough for the intermediate policy.
	require.NotEmpty(t, result.Alternatives)
	assert.Equal(t, TypeFunctional, result.Alternatives[0].Type)
	assert.NotEmpty(t, result.Alternatives[0].RelationshipToPrimary)
	assert.True(t, result.Metadata.ShowAlternatives)
}

func TestAnalyze_ConfidencesStayInRange(t *testing.T) {
	service := NewService()
	progressions := [][]string{
		{"C", "G", "Am", "F"},
		{"Am", "D"},
		{"C", "A7", "Dm", "G7", "C"},
		{"C", "C", "C"},
		{"F#m7b5", "B7", "Em"},
	}

	for _, chords := range progressions {
		result, err := service.Analyze(context.Background(), chords, Options{})
		require.NoError(t, err, "chords %v", chords)

		assert.GreaterOrEqual(t, result.Primary.Confidence, 0.0)
		assert.LessOrEqual(t, result.Primary.Confidence, 1.0)
		assert.NotEmpty(t, result.Primary.Evidence, "a primary interpretation must carry evidence")
		for _, alt := range result.Alternatives {
			assert.LessOrEqual(t, alt.Confidence, result.Primary.Confidence)
		}
	}
}

func TestAnalyze_StaticHarmonyLowConfidence(t *testing.T) {
	service := NewService()
	result, err := service.Analyze(context.Background(), []string{"C", "C", "C"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, TypeFunctional, result.Primary.Type)
	assert.Less(t, result.Primary.Confidence, 0.3)
}

func TestAnalyze_CachedResultIsReused(t *testing.T) {
	service := NewService()
	chords := []string{"Dm", "G7", "Cmaj7"}
	opts := Options{ParentKey: "C major"}

	first, err := service.Analyze(context.Background(), chords, opts)
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), chords, opts)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, service.CachedResults())

	// A different option set misses the cache.
	_, err = service.Analyze(context.Background(), chords, Options{ParentKey: "C major", PedagogicalLevel: LevelAdvanced})
	require.NoError(t, err)
	assert.Equal(t, 2, service.CachedResults())
}

func TestAnalyze_EmptyProgression(t *testing.T) {
	service := NewService()
	_, err := service.Analyze(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyProgression)
}

func TestAnalyze_ChromaticAlternative(t *testing.T) {
	service := NewService()
	result, err := service.Analyze(context.Background(),
		[]string{"C", "A7", "Dm", "G7", "C"},
		Options{ParentKey: "C major", ForceMultipleInterpretations: true, ConfidenceThreshold: 0.3})
	require.NoError(t, err)

	assert.Equal(t, TypeFunctional, result.Primary.Type)
	assert.True(t, result.Metadata.ShowAlternatives)

	var chromaticAlt bool
	for _, alt := range result.Alternatives {
		if alt.Type == TypeChromatic {
			chromaticAlt = true
			require.NotNil(t, alt.Chromatic)
			assert.NotEmpty(t, alt.Chromatic.SecondaryDominants)
		}
	}
	assert.True(t, chromaticAlt, "expected a chromatic alternative for the secondary dominant")
}

func TestShowAlternatives_Policy(t *testing.T) {
	confident := Interpretation{Confidence: 0.9}
	uncertain := Interpretation{Confidence: 0.5}
	nearby := []AlternativeAnalysis{{Interpretation: Interpretation{Confidence: 0.8}}}
	distant := []AlternativeAnalysis{{Interpretation: Interpretation{Confidence: 0.4}}}

	tests := []struct {
		name         string
		primary      Interpretation
		alternatives []AlternativeAnalysis
		opts         Options
		expected     bool
	}{
		{name: "advanced always shows", primary: confident, alternatives: nil,
			opts: Options{PedagogicalLevel: LevelAdvanced}, expected: true},
		{name: "forced always shows", primary: confident, alternatives: nil,
			opts: Options{ForceMultipleInterpretations: true}, expected: true},
		{name: "beginner hides behind confident primary", primary: confident, alternatives: nearby,
			opts: Options{PedagogicalLevel: LevelBeginner}, expected: false},
		{name: "beginner sees ambiguity", primary: uncertain, alternatives: nearby,
			opts: Options{PedagogicalLevel: LevelBeginner}, expected: true},
		{name: "intermediate shows close calls", primary: confident, alternatives: nearby,
			opts: Options{PedagogicalLevel: LevelIntermediate}, expected: true},
		{name: "intermediate hides distant alternatives", primary: confident, alternatives: distant,
			opts: Options{PedagogicalLevel: LevelIntermediate}, expected: false},
		{name: "intermediate with nothing to show", primary: confident, alternatives: nil,
			opts: Options{PedagogicalLevel: LevelIntermediate}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, showAlternatives(tt.primary, tt.alternatives, tt.opts))
		})
	}
}

func TestFallbackInterpretation(t *testing.T) {
	interp := fallbackInterpretation([]string{"C", "G"}, nil)

	assert.Equal(t, TypeFunctional, interp.Type)
	assert.InDelta(t, fallbackConfidence, interp.Confidence, 1e-9)
	require.Len(t, interp.Evidence, 1)
	assert.Equal(t, EvidenceHarmonic, interp.Evidence[0].Type)
}

func TestRecognizeIdiom(t *testing.T) {
	tests := []struct {
		name     string
		numerals []string
		expected string
		found    bool
	}{
		{name: "two five one", numerals: []string{"ii", "V7", "I"}, expected: "ii-V-I", found: true},
		{name: "doo wop", numerals: []string{"I", "vi", "IV", "V"}, expected: "I-vi-IV-V", found: true},
		{name: "idiom inside longer progression", numerals: []string{"I", "ii", "V7", "I"}, expected: "ii-V-I", found: true},
		{name: "secondary dominant slash stripped", numerals: []string{"ii", "V7/V", "V", "I"}, found: false},
		{name: "sequential run", numerals: []string{"I", "ii", "iii", "IV"}, expected: "sequential scale-degree run", found: true},
		{name: "no idiom", numerals: []string{"I", "bVII", "IV", "I"}, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idiom, ok := recognizeIdiom(tt.numerals)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, idiom)
			}
		})
	}
}
