package matcher

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"taxi-faq/internal/models"
	"taxi-faq/pkg/config"
)

var (
	ErrNoEntries    = errors.New("knowledge base has no entries")
	ErrInvalidEntry = errors.New("invalid knowledge entry")
)

type phrase struct {
	text   string // normalized
	tokens int    // content tokens, stop-words excluded
}

type indexedEntry struct {
	entry          models.KnowledgeEntry
	position       int
	phrases        []phrase // canonical question first, then variations
	keywordStems   map[string]struct{}
	questionStems  map[string]struct{}
	variationStems map[string]struct{}
}

// Matcher answers free-text questions from an immutable, pre-indexed
// knowledge base. All methods are safe for concurrent use.
type Matcher struct {
	cfg    config.MatcherConfig
	logger *zap.Logger
	stem   StemFunc
	fuzzy  *FuzzyMatcher

	entries      []indexedEntry
	byID         map[string]int
	phraseIndex  map[string][]int // normalized phrase -> positions
	termIndex    map[string][]int // stem -> positions using it anywhere
	keywordIndex map[string][]int // keyword stem -> positions
	keywordStems []string         // sorted, for fuzzy lookups
	stemForms    map[string]string
}

type Option func(*Matcher)

// WithStemmer replaces the built-in stemmer.
func WithStemmer(stem StemFunc) Option {
	return func(m *Matcher) {
		if stem != nil {
			m.stem = stem
		}
	}
}

// Stats describes the size of the built indexes.
type Stats struct {
	Entries      int `json:"entries"`
	Phrases      int `json:"phrases"`
	Terms        int `json:"terms"`
	KeywordStems int `json:"keyword_stems"`
}

type candidate struct {
	position int
	score    float64
	terms    []string
}

// New indexes entries in the given order. Load order is significant: it
// breaks ties between equally scored entries.
func New(entries []models.KnowledgeEntry, cfg *config.MatcherConfig, logger *zap.Logger, opts ...Option) (*Matcher, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	if cfg == nil {
		defaults := config.DefaultMatcherConfig()
		cfg = &defaults
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate matcher config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Matcher{
		cfg:          *cfg,
		logger:       logger,
		stem:         defaultStemmer.Stem,
		fuzzy:        NewFuzzyMatcher(cfg.FuzzyEnabled, cfg.FuzzyThreshold),
		byID:         make(map[string]int, len(entries)),
		phraseIndex:  make(map[string][]int),
		termIndex:    make(map[string][]int),
		keywordIndex: make(map[string][]int),
		stemForms:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, e := range entries {
		if err := m.add(i, e); err != nil {
			return nil, err
		}
	}

	m.keywordStems = make([]string, 0, len(m.keywordIndex))
	for s := range m.keywordIndex {
		m.keywordStems = append(m.keywordStems, s)
	}
	sort.Strings(m.keywordStems)

	m.logger.Info("FAQ matcher built",
		zap.Int("entries", len(m.entries)),
		zap.Int("phrases", len(m.phraseIndex)),
		zap.Int("keyword_stems", len(m.keywordStems)),
	)

	return m, nil
}

func (m *Matcher) add(position int, e models.KnowledgeEntry) error {
	if strings.TrimSpace(e.Answer) == "" {
		return fmt.Errorf("%w: entry %q has no answer", ErrInvalidEntry, e.ID)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: entry at position %d has no id", ErrInvalidEntry, position)
	}
	if _, dup := m.byID[e.ID]; dup {
		return fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, e.ID)
	}
	if !e.Category.Valid() {
		e.Category = models.CategoryGeneral
	}

	ie := indexedEntry{
		entry:          e.Clone(),
		position:       position,
		keywordStems:   make(map[string]struct{}),
		questionStems:  make(map[string]struct{}),
		variationStems: make(map[string]struct{}),
	}

	m.addPhrase(&ie, e.Question, ie.questionStems)
	for _, v := range e.Variations {
		m.addPhrase(&ie, v, ie.variationStems)
	}
	for _, k := range e.Keywords {
		for _, tok := range contentTokens(Tokenize(k)) {
			ie.keywordStems[m.stemOf(tok)] = struct{}{}
		}
	}

	if len(ie.phrases) == 0 && len(ie.keywordStems) == 0 {
		return fmt.Errorf("%w: entry %q has no question, variation or keyword", ErrInvalidEntry, e.ID)
	}

	for s := range ie.keywordStems {
		m.keywordIndex[s] = append(m.keywordIndex[s], position)
	}
	for _, set := range []map[string]struct{}{ie.keywordStems, ie.questionStems, ie.variationStems} {
		for s := range set {
			if idx := m.termIndex[s]; len(idx) == 0 || idx[len(idx)-1] != position {
				m.termIndex[s] = append(idx, position)
			}
		}
	}

	m.byID[e.ID] = position
	m.entries = append(m.entries, ie)
	return nil
}

func (m *Matcher) addPhrase(ie *indexedEntry, raw string, stems map[string]struct{}) {
	norm := Normalize(raw)
	if norm == "" {
		return
	}

	content := contentTokens(strings.Fields(norm))
	ie.phrases = append(ie.phrases, phrase{text: norm, tokens: len(content)})

	if idx := m.phraseIndex[norm]; len(idx) == 0 || idx[len(idx)-1] != ie.position {
		m.phraseIndex[norm] = append(idx, ie.position)
	}
	for _, tok := range content {
		stems[m.stemOf(tok)] = struct{}{}
	}
}

// stemOf stems tok and remembers the first surface form seen for the stem.
func (m *Matcher) stemOf(tok string) string {
	s := m.stem(tok)
	if s == "" {
		s = tok
	}
	if _, ok := m.stemForms[s]; !ok {
		m.stemForms[s] = tok
	}
	return s
}

// Match finds the best entry for query across the whole knowledge base.
func (m *Matcher) Match(query string) models.MatchResult {
	return m.MatchInCategory(query, models.CategoryGeneral)
}

// MatchInCategory restricts candidates to one category. An empty, unknown or
// general category searches everything.
func (m *Matcher) MatchInCategory(query string, category models.Category) models.MatchResult {
	norm := Normalize(query)
	if norm == "" {
		return m.fallback(models.CategoryGeneral, nil)
	}

	queryCategory := Classify(norm)
	allowed := func(pos int) bool {
		if category == "" || category == models.CategoryGeneral || !category.Valid() {
			return true
		}
		return m.entries[pos].entry.Category == category
	}

	if pos, ok := m.exact(norm, allowed); ok {
		return m.result(pos, 1.0, models.MatchBasisExact, queryCategory, nil)
	}

	if m.cfg.ContainmentConfidence >= m.cfg.MinConfidence {
		if pos, ok := m.containment(norm, allowed); ok {
			return m.result(pos, m.cfg.ContainmentConfidence, models.MatchBasisExact, queryCategory, nil)
		}
	}

	candidates := m.score(norm, allowed)
	if len(candidates) > 0 {
		best := candidates[0]
		confidence := m.confidence(best.score)
		if confidence >= m.cfg.MinConfidence {
			res := m.result(best.position, confidence, models.MatchBasisKeyword, queryCategory, best.terms)
			if queryCategory != models.CategoryGeneral && res.Category != queryCategory {
				m.logger.Debug("Matched entry category differs from query category",
					zap.String("entry_id", res.EntryID),
					zap.String("entry_category", string(res.Category)),
					zap.String("query_category", string(queryCategory)),
				)
			}
			return res
		}
	}

	return m.fallback(queryCategory, candidates)
}

func (m *Matcher) exact(norm string, allowed func(int) bool) (int, bool) {
	for _, pos := range m.phraseIndex[norm] {
		if allowed(pos) {
			return pos, true
		}
	}
	return 0, false
}

// containment looks for a question or variation that contains the query or is
// contained in it on word boundaries. The shorter side must carry at least
// MinContainmentTokens content words; the longest matched phrase wins. An
// entry with keywords qualifies only when the query hits one of them.
func (m *Matcher) containment(norm string, allowed func(int) bool) (int, bool) {
	tokens := contentTokens(strings.Fields(norm))
	queryTokens := len(tokens)

	stems := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		stems[m.queryStem(tok)] = struct{}{}
	}

	bestPos, bestLen := -1, 0
	for pos := range m.entries {
		if !allowed(pos) || !m.hasKeywordHit(pos, stems) {
			continue
		}
		for _, p := range m.entries[pos].phrases {
			matched := 0
			switch {
			case p.tokens >= m.cfg.MinContainmentTokens && containsPhrase(norm, p.text):
				matched = p.tokens
			case queryTokens >= m.cfg.MinContainmentTokens && containsPhrase(p.text, norm):
				matched = queryTokens
			}
			if matched > bestLen {
				bestPos, bestLen = pos, matched
			}
		}
	}
	return bestPos, bestPos >= 0
}

func (m *Matcher) hasKeywordHit(pos int, stems map[string]struct{}) bool {
	keywords := m.entries[pos].keywordStems
	if len(keywords) == 0 {
		return true
	}
	for s := range stems {
		if _, ok := keywords[s]; ok {
			return true
		}
	}
	return false
}

func (m *Matcher) queryStem(tok string) string {
	if s := m.stem(tok); s != "" {
		return s
	}
	return tok
}

// score runs the weighted keyword tier and returns every entry with a
// positive score, best first. Equal scores keep load order.
func (m *Matcher) score(norm string, allowed func(int) bool) []candidate {
	scores := make(map[int]*candidate)
	hit := func(pos int, w float64, term string) {
		c, ok := scores[pos]
		if !ok {
			c = &candidate{position: pos}
			scores[pos] = c
		}
		c.score += w
		c.terms = append(c.terms, term)
	}

	seen := make(map[string]struct{})
	for _, tok := range contentTokens(strings.Fields(norm)) {
		s := m.queryStem(tok)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}

		term := m.canonicalForm(s, tok)
		for _, pos := range m.termIndex[s] {
			if !allowed(pos) {
				continue
			}
			ie := &m.entries[pos]
			w := 0.0
			if _, ok := ie.keywordStems[s]; ok {
				w += m.cfg.KeywordWeight
			}
			if _, ok := ie.questionStems[s]; ok {
				w += m.cfg.QuestionWeight
			}
			if _, ok := ie.variationStems[s]; ok {
				w += m.cfg.VariationWeight
			}
			hit(pos, w, term)
		}

		if len(m.keywordIndex[s]) == 0 && m.fuzzy.IsEnabled() {
			m.fuzzyHits(s, allowed, hit)
		}
	}

	out := make([]candidate, 0, len(scores))
	for _, c := range scores {
		if c.score > 0 {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].position < out[j].position
	})
	return out
}

// fuzzyHits credits each entry at most once per query stem, at a reduced
// keyword weight, for keywords that are a likely typo of the stem.
func (m *Matcher) fuzzyHits(s string, allowed func(int) bool, hit func(int, float64, string)) {
	credited := make(map[int]struct{})
	w := m.cfg.KeywordWeight * m.cfg.FuzzyPenalty
	for _, kw := range m.keywordStems {
		if !m.fuzzy.Match(s, kw) {
			continue
		}
		for _, pos := range m.keywordIndex[kw] {
			if _, done := credited[pos]; done || !allowed(pos) {
				continue
			}
			credited[pos] = struct{}{}
			hit(pos, w, m.canonicalForm(kw, kw))
		}
	}
}

func (m *Matcher) canonicalForm(stem, fallback string) string {
	if form, ok := m.stemForms[stem]; ok {
		return form
	}
	return fallback
}

// confidence maps a raw keyword score onto [0, KeywordMaxConfidence].
func (m *Matcher) confidence(score float64) float64 {
	c := math.Min(score/m.cfg.ScoreCeiling, m.cfg.KeywordMaxConfidence)
	return math.Round(c*1000) / 1000
}

func (m *Matcher) result(pos int, confidence float64, basis models.MatchBasis, queryCategory models.Category, terms []string) models.MatchResult {
	e := m.entries[pos].entry
	return models.MatchResult{
		EntryID:       e.ID,
		Question:      e.Question,
		Answer:        e.Answer,
		Category:      e.Category,
		QueryCategory: queryCategory,
		Confidence:    confidence,
		Basis:         basis,
		MatchedTerms:  append([]string(nil), terms...),
	}
}

func (m *Matcher) fallback(queryCategory models.Category, candidates []candidate) models.MatchResult {
	res := models.MatchResult{
		Answer:        m.cfg.FallbackAnswer,
		Category:      queryCategory,
		QueryCategory: queryCategory,
		Confidence:    0,
		Basis:         models.MatchBasisFallback,
	}
	for i := 0; i < len(candidates) && i < m.cfg.Suggestions; i++ {
		e := m.entries[candidates[i].position].entry
		q := e.Question
		if q == "" && len(e.Variations) > 0 {
			q = e.Variations[0]
		}
		if q != "" {
			res.Suggestions = append(res.Suggestions, q)
		}
	}
	return res
}

// Classify returns the category of a free-text query.
func (m *Matcher) Classify(query string) models.Category {
	return Classify(query)
}

// Entries returns copies of all entries in load order.
func (m *Matcher) Entries() []models.KnowledgeEntry {
	out := make([]models.KnowledgeEntry, len(m.entries))
	for i := range m.entries {
		out[i] = m.entries[i].entry.Clone()
	}
	return out
}

// Entry looks an entry up by id.
func (m *Matcher) Entry(id string) (models.KnowledgeEntry, bool) {
	pos, ok := m.byID[id]
	if !ok {
		return models.KnowledgeEntry{}, false
	}
	return m.entries[pos].entry.Clone(), true
}

// Stats reports the size of the built indexes.
func (m *Matcher) Stats() Stats {
	return Stats{
		Entries:      len(m.entries),
		Phrases:      len(m.phraseIndex),
		Terms:        len(m.termIndex),
		KeywordStems: len(m.keywordStems),
	}
}
