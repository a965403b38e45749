package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taxi-faq/internal/matcher"
	"taxi-faq/internal/metrics"
	"taxi-faq/internal/models"
)

var (
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEntryNotFound    = errors.New("knowledge entry not found")
	ErrQueryLogDisabled = errors.New("unmatched query log is not configured")
)

// maxQuestionRunes bounds the text handed to the matcher.
const maxQuestionRunes = 1000

// UnmatchedQueryStore persists questions that got the fallback answer.
type UnmatchedQueryStore interface {
	Record(ctx context.Context, q *models.UnmatchedQuery) error
	ListRecent(ctx context.Context, limit int) ([]models.UnmatchedQuery, error)
}

// CategoryInfo describes one category for listing.
type CategoryInfo struct {
	Category models.Category
	Priority int // position in the classifier order, 1 is checked first
	Entries  int
}

type FAQService struct {
	matcher *matcher.Matcher
	store   UnmatchedQueryStore
	metrics *metrics.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewFAQService wires the matcher to the outer layers. store and rec may be
// nil.
func NewFAQService(m *matcher.Matcher, store UnmatchedQueryStore, rec *metrics.Recorder, logger *zap.Logger) *FAQService {
	return &FAQService{
		matcher: m,
		store:   store,
		metrics: rec,
		logger:  logger,
		now:     time.Now,
	}
}

// Ask answers a free-text question, optionally restricted to one category.
// Not finding an answer is not an error: the fallback result is returned.
func (s *FAQService) Ask(ctx context.Context, question, category string) (models.MatchResult, error) {
	scope, err := parseScope(category)
	if err != nil {
		return models.MatchResult{}, err
	}

	question = truncate(sanitizeUTF8(question), maxQuestionRunes)

	start := time.Now()
	res := s.matcher.MatchInCategory(question, scope)
	s.metrics.ObserveMatch(res, time.Since(start))

	if res.Matched() {
		s.logger.Debug("FAQ answer found",
			zap.String("question", question),
			zap.String("entry_id", res.EntryID),
			zap.String("basis", string(res.Basis)),
			zap.Float64("confidence", res.Confidence),
		)
		return res, nil
	}

	s.logger.Info("No FAQ answer found",
		zap.String("question", question),
		zap.String("query_category", string(res.QueryCategory)),
		zap.Int("suggestions", len(res.Suggestions)),
	)
	s.recordUnmatched(ctx, question, res)

	return res, nil
}

func (s *FAQService) recordUnmatched(ctx context.Context, question string, res models.MatchResult) {
	if s.store == nil || strings.TrimSpace(question) == "" {
		return
	}

	q := &models.UnmatchedQuery{
		ID:          uuid.New(),
		Question:    question,
		Category:    res.QueryCategory,
		Suggestions: res.Suggestions,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Record(ctx, q); err != nil {
		s.metrics.UnmatchedLogError()
		s.logger.Warn("Failed to record unmatched query", zap.Error(err))
	}
}

// Classify returns the category of a free-text question.
func (s *FAQService) Classify(question string) models.Category {
	return s.matcher.Classify(sanitizeUTF8(question))
}

// Categories lists every category with its classifier priority and the
// number of entries filed under it.
func (s *FAQService) Categories() []CategoryInfo {
	counts := make(map[models.Category]int)
	for _, e := range s.matcher.Entries() {
		counts[e.Category]++
	}

	priority := matcher.CategoryPriority()
	out := make([]CategoryInfo, 0, len(priority))
	for i, c := range priority {
		out = append(out, CategoryInfo{Category: c, Priority: i + 1, Entries: counts[c]})
	}
	return out
}

// Entries returns the knowledge base in load order, optionally filtered by
// category.
func (s *FAQService) Entries(category string) ([]models.KnowledgeEntry, error) {
	entries := s.matcher.Entries()
	if strings.TrimSpace(category) == "" {
		return entries, nil
	}

	c, err := models.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCategory, err)
	}

	out := entries[:0]
	for _, e := range entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out, nil
}

// Entry looks up a single entry by id.
func (s *FAQService) Entry(id string) (models.KnowledgeEntry, error) {
	e, ok := s.matcher.Entry(id)
	if !ok {
		return models.KnowledgeEntry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	return e, nil
}

// RecentUnmatched returns the latest questions that got the fallback answer.
func (s *FAQService) RecentUnmatched(ctx context.Context, limit int) ([]models.UnmatchedQuery, error) {
	if s.store == nil {
		return nil, ErrQueryLogDisabled
	}
	queries, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unmatched queries: %w", err)
	}
	return queries, nil
}

// Stats reports the size of the loaded knowledge base indexes.
func (s *FAQService) Stats() matcher.Stats {
	return s.matcher.Stats()
}

// parseScope turns the optional category filter into a matcher scope.
func parseScope(raw string) (models.Category, error) {
	if strings.TrimSpace(raw) == "" {
		return models.CategoryGeneral, nil
	}
	c, err := models.ParseCategory(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCategory, err)
	}
	return c, nil
}
