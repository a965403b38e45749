package matcher

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, folds "ё" into "е", turns every rune that is not a
// letter or digit into a space and collapses runs of whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := true // suppresses leading and repeated spaces
	for _, r := range s {
		r = unicode.ToLower(r)
		if r == 'ё' {
			r = 'е'
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokenize returns the words of the normalized form of s.
func Tokenize(s string) []string {
	return strings.Fields(Normalize(s))
}

// contentTokens drops stop-words from already normalized tokens.
func contentTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !IsStopWord(t) {
			out = append(out, t)
		}
	}
	return out
}

// containsPhrase reports whether needle occurs in haystack on word
// boundaries. Both arguments must be normalized.
func containsPhrase(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}
