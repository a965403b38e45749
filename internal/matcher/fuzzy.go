package matcher

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// minFuzzyRunes keeps short stems out of fuzzy matching; Jaro-Winkler rates
// almost any pair of three-letter stems as similar.
const minFuzzyRunes = 4

// FuzzyMatcher tolerates typos in keyword stems using Jaro-Winkler similarity.
type FuzzyMatcher struct {
	enabled   bool
	threshold float64
}

func NewFuzzyMatcher(enabled bool, threshold float64) *FuzzyMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.9
	}
	return &FuzzyMatcher{
		enabled:   enabled,
		threshold: threshold,
	}
}

func (fm *FuzzyMatcher) IsEnabled() bool {
	return fm != nil && fm.enabled
}

// Similarity returns the Jaro-Winkler similarity of a and b in [0,1].
func (fm *FuzzyMatcher) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	score, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// Match reports whether two distinct stems are close enough to count as the
// same keyword. Identical stems are not a fuzzy match.
func (fm *FuzzyMatcher) Match(a, b string) bool {
	if !fm.IsEnabled() || a == b {
		return false
	}
	if utf8.RuneCountInString(a) < minFuzzyRunes || utf8.RuneCountInString(b) < minFuzzyRunes {
		return false
	}
	return fm.Similarity(a, b) >= fm.threshold
}
