package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		name            string
		symbol          string
		expectedRoot    int
		expectedQuality Quality
		expectedBass    int
	}{
		{name: "plain major triad", symbol: "C", expectedRoot: 0, expectedQuality: QualityMajor, expectedBass: -1},
		{name: "minor triad", symbol: "Am", expectedRoot: 9, expectedQuality: QualityMinor, expectedBass: -1},
		{name: "dominant seventh", symbol: "G7", expectedRoot: 7, expectedQuality: QualityDominant7, expectedBass: -1},
		{name: "major seventh", symbol: "Cmaj7", expectedRoot: 0, expectedQuality: QualityMajor7, expectedBass: -1},
		{name: "maj without seventh", symbol: "Fmaj", expectedRoot: 5, expectedQuality: QualityMajor, expectedBass: -1},
		{name: "minor seventh", symbol: "Dm7", expectedRoot: 2, expectedQuality: QualityMinor7, expectedBass: -1},
		{name: "half diminished", symbol: "Bm7b5", expectedRoot: 11, expectedQuality: QualityHalfDiminished, expectedBass: -1},
		{name: "sharp root half diminished", symbol: "F#m7b5", expectedRoot: 6, expectedQuality: QualityHalfDiminished, expectedBass: -1},
		{name: "diminished", symbol: "Bdim", expectedRoot: 11, expectedQuality: QualityDiminished, expectedBass: -1},
		{name: "augmented", symbol: "Caug", expectedRoot: 0, expectedQuality: QualityAugmented, expectedBass: -1},
		{name: "augmented plus sign", symbol: "E+", expectedRoot: 4, expectedQuality: QualityAugmented, expectedBass: -1},
		{name: "suspended", symbol: "Dsus4", expectedRoot: 2, expectedQuality: QualitySuspended, expectedBass: -1},
		{name: "flat root", symbol: "Bb7", expectedRoot: 10, expectedQuality: QualityDominant7, expectedBass: -1},
		{name: "slash chord", symbol: "C/E", expectedRoot: 0, expectedQuality: QualityMajor, expectedBass: 4},
		{name: "slash with root bass collapses", symbol: "C/C", expectedRoot: 0, expectedQuality: QualityMajor, expectedBass: -1},
		{name: "ninth is dominant family", symbol: "G9", expectedRoot: 7, expectedQuality: QualityDominant7, expectedBass: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chord, err := ParseChord(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRoot, chord.Root)
			assert.Equal(t, tt.expectedQuality, chord.Quality)
			assert.Equal(t, tt.expectedBass, chord.Bass)
		})
	}
}

func TestParseChord_Invalid(t *testing.T) {
	for _, symbol := range []string{"", "   ", "H7", "Cxyz", "7", "/G"} {
		t.Run("symbol "+symbol, func(t *testing.T) {
			_, err := ParseChord(symbol)
			assert.Error(t, err)
		})
	}
}

func TestParseChord_Extensions(t *testing.T) {
	chord, err := ParseChord("G7b9")
	require.NoError(t, err)
	assert.Equal(t, QualityDominant7, chord.Quality)
	assert.Contains(t, chord.Extensions, "b9")
}

func TestQuality_IsMinor(t *testing.T) {
	assert.True(t, QualityMinor.IsMinor())
	assert.True(t, QualityMinor7.IsMinor())
	assert.True(t, QualityDiminished.IsMinor())
	assert.True(t, QualityHalfDiminished.IsMinor())
	assert.False(t, QualityMajor.IsMinor())
	assert.False(t, QualityDominant7.IsMinor())
}

func TestQuality_HasSeventh(t *testing.T) {
	assert.True(t, QualityDominant7.HasSeventh())
	assert.True(t, QualityMajor7.HasSeventh())
	assert.True(t, QualityMinor7.HasSeventh())
	assert.False(t, QualityMajor.HasSeventh())
	assert.False(t, QualityAugmented.HasSeventh())
}
