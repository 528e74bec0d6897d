package modal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammywachtel/harmonia-api/internal/theory"
)

func parseAll(t *testing.T, symbols []string) []*theory.Chord {
	t.Helper()
	parsed := make([]*theory.Chord, len(symbols))
	for i, s := range symbols {
		chord, err := theory.ParseChord(s)
		require.NoError(t, err)
		parsed[i] = chord
	}
	return parsed
}

func TestTonicCandidates_FrameAgreementDominates(t *testing.T) {
	parsed := parseAll(t, []string{"G", "F", "C", "G"})
	candidates := tonicCandidates(parsed, nil)
	require.NotEmpty(t, candidates)
	assert.Equal(t, 7, candidates[0]) // G frames the progression
}

func TestTonicCandidates_TieBreaksOnFirstOccurrence(t *testing.T) {
	// Both roots carry identical structural weight; the earlier one wins.
	parsed := parseAll(t, []string{"Am", "D"})
	candidates := tonicCandidates(parsed, nil)
	require.Len(t, candidates, 1)
	assert.Equal(t, 9, candidates[0]) // A
}

func TestTonicCandidates_HintAddsSecondCandidate(t *testing.T) {
	parsed := parseAll(t, []string{"G", "F", "C", "G"})
	hint := &theory.Key{Root: 0}
	candidates := tonicCandidates(parsed, hint)
	assert.Equal(t, []int{7, 0}, candidates)
}

func TestTonicCandidates_HintAlreadyTopIsNotDuplicated(t *testing.T) {
	parsed := parseAll(t, []string{"G", "F", "C", "G"})
	hint := &theory.Key{Root: 7}
	candidates := tonicCandidates(parsed, hint)
	assert.Equal(t, []int{7}, candidates)
}

func TestTonicCandidates_NothingParseable(t *testing.T) {
	assert.Nil(t, tonicCandidates([]*theory.Chord{nil, nil}, nil))
}
