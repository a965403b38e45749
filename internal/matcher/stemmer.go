package matcher

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/surgebase/porter2"
)

// StemFunc maps a normalized word to its canonical stem. The matcher only
// ever sees stems through this type, so a real morphological analyser can be
// plugged in with WithStemmer.
type StemFunc func(word string) string

// Stemmer reduces inflected words to a stem: a static table of irregular and
// domain forms first, then single-pass suffix stripping for Cyrillic words and
// Porter2 for Latin ones.
type Stemmer struct {
	minStemLen int
	table      map[string]string
	suffixes   []string // longest first
}

// NewStemmer creates a stemmer over the built-in tables. Suffixes are only
// stripped when at least minStemLen runes remain.
func NewStemmer(minStemLen int) *Stemmer {
	if minStemLen < 1 {
		minStemLen = 3
	}

	suffixes := append([]string(nil), russianSuffixes...)
	sort.SliceStable(suffixes, func(i, j int) bool {
		return utf8.RuneCountInString(suffixes[i]) > utf8.RuneCountInString(suffixes[j])
	})

	return &Stemmer{
		minStemLen: minStemLen,
		table:      stemTable,
		suffixes:   suffixes,
	}
}

var defaultStemmer = NewStemmer(3)

// Stem reduces a single word with the default stemmer.
func Stem(word string) string {
	return defaultStemmer.Stem(word)
}

// Stem returns the stem of word, or word itself when no rule applies.
func (s *Stemmer) Stem(word string) string {
	w := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), "ё", "е")
	if w == "" {
		return w
	}

	if stem, ok := s.table[w]; ok {
		return stem
	}

	switch script(w) {
	case scriptCyrillic:
		return s.stripSuffix(w)
	case scriptLatin:
		if len(w) < s.minStemLen {
			return w
		}
		return porter2.Stem(w)
	default:
		return w
	}
}

func (s *Stemmer) stripSuffix(w string) string {
	n := utf8.RuneCountInString(w)
	for _, suffix := range s.suffixes {
		if !strings.HasSuffix(w, suffix) {
			continue
		}
		if n-utf8.RuneCountInString(suffix) >= s.minStemLen {
			return strings.TrimSuffix(w, suffix)
		}
	}
	return w
}

type wordScript int

const (
	scriptOther wordScript = iota
	scriptCyrillic
	scriptLatin
)

// script classifies a word by its letters; digits and mixed words are
// scriptOther and are left untouched.
func script(w string) wordScript {
	result := scriptOther
	for _, r := range w {
		var current wordScript
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			current = scriptCyrillic
		case r < utf8.RuneSelf && unicode.IsLetter(r):
			current = scriptLatin
		default:
			return scriptOther
		}
		if result != scriptOther && result != current {
			return scriptOther
		}
		result = current
	}
	return result
}
