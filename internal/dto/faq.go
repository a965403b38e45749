package dto

import (
	"time"

	"taxi-faq/internal/models"
	"taxi-faq/internal/service"
)

const (
	SourceKnowledgeBase = "knowledge_base"
	SourceFallback      = "fallback"
)

type MatchRequest struct {
	Question string `json:"question" example:"Как пополнить баланс?"`
	Category string `json:"category,omitempty" example:"payment"`
}

type MatchResponse struct {
	EntryID       string   `json:"entry_id,omitempty"`
	Question      string   `json:"question,omitempty"`
	Answer        string   `json:"answer"`
	Category      string   `json:"category"`
	QueryCategory string   `json:"query_category"`
	Confidence    float64  `json:"confidence"`
	MatchBasis    string   `json:"match_basis" enums:"exact,keyword,fallback"`
	Source        string   `json:"source" enums:"knowledge_base,fallback"`
	MatchedTerms  []string `json:"matched_terms,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

type ClassifyRequest struct {
	Question string `json:"question" example:"Откуда наценка?"`
}

type ClassifyResponse struct {
	Category string   `json:"category"`
	Priority []string `json:"priority"`
}

type CategoryResponse struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Entries  int    `json:"entries"`
}

type EntryResponse struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Variations []string `json:"variations"`
	Keywords   []string `json:"keywords"`
	Answer     string   `json:"answer"`
	Category   string   `json:"category"`
}

type UnmatchedQueryResponse struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	Entries      int    `json:"entries"`
	Phrases      int    `json:"phrases"`
	KeywordStems int    `json:"keyword_stems"`
}

func NewMatchResponse(res models.MatchResult) MatchResponse {
	source := SourceFallback
	if res.Matched() {
		source = SourceKnowledgeBase
	}
	return MatchResponse{
		EntryID:       res.EntryID,
		Question:      res.Question,
		Answer:        res.Answer,
		Category:      string(res.Category),
		QueryCategory: string(res.QueryCategory),
		Confidence:    res.Confidence,
		MatchBasis:    string(res.Basis),
		Source:        source,
		MatchedTerms:  res.MatchedTerms,
		Suggestions:   res.Suggestions,
	}
}

func NewEntryResponse(e models.KnowledgeEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Question:   e.Question,
		Variations: nonNil(e.Variations),
		Keywords:   nonNil(e.Keywords),
		Answer:     e.Answer,
		Category:   string(e.Category),
	}
}

func NewCategoryResponses(categories []service.CategoryInfo) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{Name: string(c.Category), Priority: c.Priority, Entries: c.Entries}
	}
	return out
}

func NewUnmatchedQueryResponse(q models.UnmatchedQuery) UnmatchedQueryResponse {
	return UnmatchedQueryResponse{
		ID:          q.ID.String(),
		Question:    q.Question,
		Category:    string(q.Category),
		Suggestions: q.Suggestions,
		CreatedAt:   q.CreatedAt.Format(time.RFC3339),
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
