package models

type MatchBasis string

const (
	MatchBasisExact    MatchBasis = "exact"
	MatchBasisKeyword  MatchBasis = "keyword"
	MatchBasisFallback MatchBasis = "fallback"
)

// MatchResult is produced per query and never persisted.
type MatchResult struct {
	EntryID       string     `json:"entry_id,omitempty"` // empty on fallback
	Question      string     `json:"question,omitempty"`
	Answer        string     `json:"answer"`
	Category      Category   `json:"category"`
	QueryCategory Category   `json:"query_category"`
	Confidence    float64    `json:"confidence"`
	Basis         MatchBasis `json:"match_basis"`
	MatchedTerms  []string   `json:"matched_terms,omitempty"`
	Suggestions   []string   `json:"suggestions,omitempty"`
}

// Matched reports whether the result points at a knowledge entry.
func (r MatchResult) Matched() bool {
	return r.EntryID != "" && r.Basis != MatchBasisFallback
}
