package modal

import (
	"sort"

	"github.com/sammywachtel/harmonia-api/internal/theory"
)

// structural weighting constants for tonic-candidate search
const (
	occurrenceWeight    = 0.5
	firstChordWeight    = 3.0
	lastChordWeight     = 3.0
	frameAgreementBonus = 5.0
	maxCandidates       = 2
)

// tonicCandidates ranks distinct chord roots as hypothesized tonal centers.
// The top-weighted root is the primary candidate; a differing key-hint root is
// appended as the second. At most two candidates are returned.
func tonicCandidates(parsed []*theory.Chord, hint *theory.Key) []int {
	type weighted struct {
		pc     int
		weight float64
		first  int
	}

	weights := map[int]*weighted{}
	for i, chord := range parsed {
		if chord == nil {
			continue
		}
		w, ok := weights[chord.Root]
		if !ok {
			w = &weighted{pc: chord.Root, first: i}
			weights[chord.Root] = w
		}
		w.weight += occurrenceWeight
	}
	if len(weights) == 0 {
		return nil
	}

	first := firstParsed(parsed)
	last := lastParsed(parsed)
	if first != nil {
		weights[first.Root].weight += firstChordWeight
	}
	if last != nil {
		weights[last.Root].weight += lastChordWeight
	}
	if first != nil && last != nil && first.Root == last.Root {
		weights[first.Root].weight += frameAgreementBonus
	}

	ranked := make([]*weighted, 0, len(weights))
	for _, w := range weights {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].first < ranked[j].first
	})

	candidates := []int{ranked[0].pc}
	if hint != nil && hint.Root != ranked[0].pc {
		candidates = append(candidates, hint.Root)
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

func firstParsed(parsed []*theory.Chord) *theory.Chord {
	for _, c := range parsed {
		if c != nil {
			return c
		}
	}
	return nil
}

func lastParsed(parsed []*theory.Chord) *theory.Chord {
	for i := len(parsed) - 1; i >= 0; i-- {
		if parsed[i] != nil {
			return parsed[i]
		}
	}
	return nil
}
