// Package interpretation runs the functional and modal analyzers over a
// progression, fuses their findings into confidence-ranked interpretations
// and selects a primary reading plus disclosed alternatives.
package interpretation

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sammywachtel/harmonia-api/internal/analysis/chromatic"
	"github.com/sammywachtel/harmonia-api/internal/analysis/functional"
	"github.com/sammywachtel/harmonia-api/internal/analysis/modal"
)

// ErrEmptyProgression is the single fatal input error: nothing to analyze.
var ErrEmptyProgression = functional.ErrEmptyProgression

// ranking thresholds
const (
	minRankedConfidence  = 0.2
	fallbackConfidence   = 0.2
	beginnerDisclosure   = 0.8
	intermediateGapLimit = 0.3
)

// Service is the interpretation engine. It owns its result cache; callers
// wanting isolation construct their own instance.
type Service struct {
	cache *resultCache
}

// NewService returns a Service with the default cache sizing.
func NewService() *Service {
	return NewServiceWithCache(DefaultCacheCapacity, DefaultCacheTTL)
}

// NewServiceWithCache returns a Service with an explicitly sized cache.
func NewServiceWithCache(capacity int, ttl time.Duration) *Service {
	return &Service{cache: newResultCache(capacity, ttl)}
}

// CachedResults reports how many analyses are currently cached.
func (s *Service) CachedResults() int {
	return s.cache.len()
}

// Analyze produces the ranked interpretations for a chord progression.
// The two analyzers run concurrently; a failure or panic in either one is
// demoted to "no result from that analyzer" rather than propagated.
func (s *Service) Analyze(ctx context.Context, chords []string, opts Options) (*Result, error) {
	if len(chords) == 0 {
		return nil, ErrEmptyProgression
	}
	opts = opts.withDefaults()

	key := cacheKey(chords, opts)
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	start := time.Now()
	funcRes, modalRes := s.runAnalyzers(ctx, chords, opts.ParentKey)

	interpretations := s.buildInterpretations(funcRes, modalRes, opts)

	sort.SliceStable(interpretations, func(i, j int) bool {
		return interpretations[i].Confidence > interpretations[j].Confidence
	})

	ranked := interpretations[:0:0]
	for _, interp := range interpretations {
		if interp.Confidence > minRankedConfidence && len(interp.Evidence) > 0 {
			ranked = append(ranked, interp)
		}
	}

	var primary Interpretation
	if len(ranked) > 0 {
		primary = ranked[0]
	} else {
		primary = fallbackInterpretation(chords, funcRes)
	}

	alternatives := selectAlternatives(primary, ranked, opts)

	result := &Result{
		Primary:      primary,
		Alternatives: alternatives,
		Metadata: Metadata{
			TotalInterpretationsConsidered: len(interpretations),
			ConfidenceThreshold:            opts.ConfidenceThreshold,
			ShowAlternatives:               showAlternatives(primary, alternatives, opts),
			PedagogicalLevel:               opts.PedagogicalLevel,
			AnalysisTimeMS:                 time.Since(start).Milliseconds(),
		},
		InputChords: chords,
	}

	s.cache.put(key, result)
	return result, nil
}

// runAnalyzers fans out the two pure analyzers and joins them. Each goroutine
// recovers its own panics; a failed analyzer simply contributes nothing.
func (s *Service) runAnalyzers(_ context.Context, chords []string, parentKey string) (*functional.Result, *modal.Result) {
	var wg sync.WaitGroup
	var funcRes *functional.Result
	var modalRes *modal.Result

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("functional analyzer panicked, dropping its result: %v", r)
				funcRes = nil
			}
		}()
		result, err := functional.Analyze(chords, parentKey)
		if err != nil {
			log.Printf("functional analyzer failed: %v", err)
			return
		}
		funcRes = result
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("modal analyzer panicked, dropping its result: %v", r)
				modalRes = nil
			}
		}()
		result, err := modal.Analyze(chords, parentKey)
		if err != nil {
			log.Printf("modal analyzer failed: %v", err)
			return
		}
		modalRes = result
	}()
	wg.Wait()

	return funcRes, modalRes
}

// buildInterpretations converts each non-nil analyzer result into a scored
// Interpretation, including the chromatic classification when present.
func (s *Service) buildInterpretations(funcRes *functional.Result, modalRes *modal.Result, opts Options) []Interpretation {
	var interpretations []Interpretation

	if funcRes != nil {
		evidence := functionalEvidence(funcRes, opts.ParentKey != "")
		interpretations = append(interpretations, Interpretation{
			Type:          TypeFunctional,
			Confidence:    fuseConfidence(evidence),
			Analysis:      fmt.Sprintf("%s in %s", strings.Join(funcRes.Numerals(), "-"), funcRes.KeyName),
			Reasoning:     funcRes.Reasoning + ". Evidence: " + describeEvidence(evidence),
			RomanNumerals: funcRes.Numerals(),
			KeySignature:  funcRes.KeyName,
			Evidence:      evidence,
			Functional:    funcRes,
		})

		if cr := chromatic.Classify(funcRes); cr != nil {
			evidence := chromaticEvidence(cr)
			interpretations = append(interpretations, Interpretation{
				Type:          TypeChromatic,
				Confidence:    fuseConfidence(evidence),
				Analysis:      fmt.Sprintf("chromatic reading of %s: %s", funcRes.KeyName, cr.Summary()),
				Reasoning:     "Chromatic vocabulary reshapes the diatonic frame. Evidence: " + describeEvidence(evidence),
				RomanNumerals: funcRes.Numerals(),
				KeySignature:  funcRes.KeyName,
				Evidence:      evidence,
				Chromatic:     cr,
			})
		}
	}

	if modalRes != nil {
		evidence := modalEvidence(modalRes)
		interpretations = append(interpretations, Interpretation{
			Type:          TypeModal,
			Confidence:    fuseConfidence(evidence),
			Analysis:      fmt.Sprintf("%s: %s", modalRes.ModeName, strings.Join(modalRes.Numerals, "-")),
			Reasoning:     modalRes.Explanation + ". Evidence: " + describeEvidence(evidence),
			RomanNumerals: modalRes.Numerals,
			KeySignature:  modalRes.TonicName,
			Mode:          modalRes.ModeName,
			Evidence:      evidence,
			Modal:         modalRes,
		})
	}

	return interpretations
}

// fallbackInterpretation hedges when nothing clears the ranking floor: the
// caller still gets a well-formed, explicitly low-confidence reading.
func fallbackInterpretation(chords []string, funcRes *functional.Result) Interpretation {
	evidence := []Evidence{{
		Type:          EvidenceHarmonic,
		Strength:      fallbackConfidence,
		Description:   "basic progression with little analyzable signal",
		Justification: "no analyzer produced evidence strong enough to rank",
		Supports:      []Type{TypeFunctional},
	}}

	interp := Interpretation{
		Type:       TypeFunctional,
		Confidence: fallbackConfidence,
		Analysis:   fmt.Sprintf("basic progression of %d chord(s)", len(chords)),
		Reasoning:  "The progression offers too little harmonic information for a confident reading; treating it as a basic progression.",
		Evidence:   evidence,
	}
	if funcRes != nil {
		interp.RomanNumerals = funcRes.Numerals()
		interp.KeySignature = funcRes.KeyName
		interp.Functional = funcRes
		interp.Reasoning = funcRes.Reasoning + " " + interp.Reasoning
	}
	return interp
}

// relationshipDescriptions explain how an alternative relates to the primary.
var relationshipDescriptions = map[Type]string{
	TypeFunctional: "functional interpretation hears the progression as cadential motion within a key",
	TypeModal:      "modal interpretation emphasizes scale degrees and color over functional relationships",
	TypeChromatic:  "chromatic interpretation foregrounds borrowed and tonicizing harmony over diatonic function",
}

func selectAlternatives(primary Interpretation, ranked []Interpretation, opts Options) []AlternativeAnalysis {
	var alternatives []AlternativeAnalysis
	for _, interp := range ranked {
		if len(alternatives) == opts.MaxAlternatives {
			break
		}
		if interp.Type == primary.Type || interp.Confidence < opts.ConfidenceThreshold {
			continue
		}
		alternatives = append(alternatives, AlternativeAnalysis{
			Interpretation:        interp,
			RelationshipToPrimary: relationshipDescriptions[interp.Type],
		})
	}
	return alternatives
}

// showAlternatives implements the pedagogical disclosure policy.
func showAlternatives(primary Interpretation, alternatives []AlternativeAnalysis, opts Options) bool {
	if opts.ForceMultipleInterpretations {
		return true
	}
	switch opts.PedagogicalLevel {
	case LevelAdvanced:
		return true
	case LevelBeginner:
		return primary.Confidence < beginnerDisclosure
	default: // intermediate
		if len(alternatives) == 0 {
			return false
		}
		return primary.Confidence-alternatives[0].Confidence < intermediateGapLimit
	}
}
