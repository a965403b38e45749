package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"taxi-faq/internal/models"
)

type KnowledgeRepository struct {
	db     DB
	logger *zap.Logger
}

func NewKnowledgeRepository(db DB, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceAll swaps the stored knowledge base for entries in one transaction.
// Slice order becomes the load order.
func (r *KnowledgeRepository) ReplaceAll(ctx context.Context, entries []models.KnowledgeEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := r.replace(ctx, tx, entries); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.logger.Warn("Failed to rollback knowledge import", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit knowledge import: %w", err)
	}

	r.logger.Info("Knowledge base stored", zap.Int("entries", len(entries)))
	return nil
}

func (r *KnowledgeRepository) replace(ctx context.Context, tx pgx.Tx, entries []models.KnowledgeEntry) error {
	sql, args, err := squirrel.Delete("faq_entries").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to clear faq entries: %w", err)
	}

	for i, e := range entries {
		query := squirrel.Insert("faq_entries").
			Columns("id", "position", "question", "variations", "keywords", "answer", "category").
			Values(e.ID, i, e.Question, nonNil(e.Variations), nonNil(e.Keywords), e.Answer, string(e.Category)).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to insert faq entry %q: %w", e.ID, err)
		}
	}
	return nil
}

// LoadAll returns the stored entries in load order.
func (r *KnowledgeRepository) LoadAll(ctx context.Context) ([]models.KnowledgeEntry, error) {
	query := squirrel.Select("id", "question", "variations", "keywords", "answer", "category").
		From("faq_entries").
		OrderBy("position").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query faq entries: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var (
			e        models.KnowledgeEntry
			category string
		)
		if err := rows.Scan(&e.ID, &e.Question, &e.Variations, &e.Keywords, &e.Answer, &category); err != nil {
			return nil, fmt.Errorf("failed to scan faq entry: %w", err)
		}
		e.Category = models.Category(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read faq entries: %w", err)
	}

	return entries, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
