package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"taxi-faq/internal/models"
)

// QueryLogRepository keeps the questions the matcher could not answer.
type QueryLogRepository struct {
	db     DB
	logger *zap.Logger
}

func NewQueryLogRepository(db DB, logger *zap.Logger) *QueryLogRepository {
	return &QueryLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *QueryLogRepository) Record(ctx context.Context, q *models.UnmatchedQuery) error {
	query := squirrel.Insert("unmatched_queries").
		Columns("id", "question", "category", "suggestions", "created_at").
		Values(q.ID, q.Question, string(q.Category), nonNil(q.Suggestions), q.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to record unmatched query: %w", err)
	}
	return nil
}

// ListRecent returns up to limit unmatched queries, newest first.
func (r *QueryLogRepository) ListRecent(ctx context.Context, limit int) ([]models.UnmatchedQuery, error) {
	if limit <= 0 {
		limit = 50
	}

	query := squirrel.Select("id", "question", "category", "suggestions", "created_at").
		From("unmatched_queries").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unmatched queries: %w", err)
	}
	defer rows.Close()

	var out []models.UnmatchedQuery
	for rows.Next() {
		var (
			q        models.UnmatchedQuery
			category string
		)
		if err := rows.Scan(&q.ID, &q.Question, &category, &q.Suggestions, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unmatched query: %w", err)
		}
		q.Category = models.Category(category)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unmatched queries: %w", err)
	}

	return out, nil
}
