package interpretation

import (
	"strings"
)

// functionalIdioms are the well-known progressions that earn the high-strength
// structural bonus. Matched as contiguous windows over normalized numerals.
var functionalIdioms = []string{
	"ii-V-I",
	"ii-V-i",
	"I-vi-IV-V",
	"vi-IV-I-V",
	"I-IV-V-I",
	"I-V-vi-IV",
	"i-iv-V-i",
	"I-IV-V",
}

// degreeNumbers maps numeral letters (case- and accidental-insensitive) to
// scale-degree positions for run detection.
var degreeNumbers = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6, "VII": 7,
}

// recognizeIdiom reports a recognized functional idiom in the numeral
// sequence: either a known progression or a sequential scale-degree run.
func recognizeIdiom(numerals []string) (string, bool) {
	normalized := make([]string, len(numerals))
	for i, n := range numerals {
		normalized[i] = normalizeNumeral(n)
	}

	for _, idiom := range functionalIdioms {
		idiomParts := strings.Split(idiom, "-")
		if window := findWindow(normalized, idiomParts); window {
			return idiom, true
		}
	}

	if len(normalized) >= 3 && isSequentialRun(normalized) {
		return "sequential scale-degree run", true
	}
	return "", false
}

func findWindow(numerals, idiom []string) bool {
	for start := 0; start+len(idiom) <= len(numerals); start++ {
		match := true
		for i, want := range idiom {
			if numerals[start+i] != want {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// isSequentialRun reports whether the whole sequence moves stepwise in one
// direction (e.g. I-ii-iii-IV).
func isSequentialRun(normalized []string) bool {
	degrees := make([]int, len(normalized))
	for i, n := range normalized {
		letters := strings.ToUpper(strings.TrimLeft(n, "b#"))
		deg, ok := degreeNumbers[letters]
		if !ok {
			return false
		}
		degrees[i] = deg
	}

	direction := degrees[1] - degrees[0]
	if direction != 1 && direction != -1 {
		return false
	}
	for i := 1; i < len(degrees); i++ {
		if degrees[i]-degrees[i-1] != direction {
			return false
		}
	}
	return true
}

// normalizeNumeral strips seventh/suspension/diminished decorations and the
// secondary-dominant slash so numerals compare against idiom tables.
func normalizeNumeral(numeral string) string {
	if idx := strings.Index(numeral, "/"); idx >= 0 {
		numeral = numeral[:idx]
	}
	for _, suffix := range []string{"maj7", "ø7", "sus4", "sus2", "sus", "°", "7", "+"} {
		numeral = strings.TrimSuffix(numeral, suffix)
	}
	return numeral
}
