package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taxi-faq/internal/models"
)

const insertEntrySQL = "INSERT INTO faq_entries (id,position,question,variations,keywords,answer,category) VALUES ($1,$2,$3,$4,$5,$6,$7)"

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestKnowledgeRepository_ReplaceAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnowledgeRepository(mock, zap.NewNop())

	entries := []models.KnowledgeEntry{
		{ID: "topup", Question: "как пополнить баланс", Keywords: []string{"баланс"}, Answer: "Профиль", Category: models.CategoryPayment},
		{ID: "cancel", Question: "как отменить заказ", Variations: []string{"отмена поездки"}, Answer: "Кнопка «Отменить»", Category: models.CategoryCancellation},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faq_entries")).
		WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectExec(regexp.QuoteMeta(insertEntrySQL)).
		WithArgs("topup", 0, "как пополнить баланс", []string{}, []string{"баланс"}, "Профиль", "payment").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertEntrySQL)).
		WithArgs("cancel", 1, "как отменить заказ", []string{"отмена поездки"}, []string{}, "Кнопка «Отменить»", "cancellation").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), entries))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeRepository_ReplaceAll_RollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnowledgeRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM faq_entries")).
		WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []models.KnowledgeEntry{{ID: "a", Question: "q", Answer: "a"}})

	assert.ErrorContains(t, err, "failed to clear faq entries")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeRepository_LoadAll(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnowledgeRepository(mock, zap.NewNop())

	rows := pgxmock.NewRows([]string{"id", "question", "variations", "keywords", "answer", "category"}).
		AddRow("topup", "как пополнить баланс", []string{"как закинуть деньги"}, []string{"баланс"}, "Профиль", "payment").
		AddRow("cancel", "как отменить заказ", []string{}, []string{"отмена"}, "Кнопка", "cancellation")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, question, variations, keywords, answer, category FROM faq_entries ORDER BY position")).
		WillReturnRows(rows)

	entries, err := repo.LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "topup", entries[0].ID)
	assert.Equal(t, []string{"как закинуть деньги"}, entries[0].Variations)
	assert.Equal(t, models.CategoryPayment, entries[0].Category)
	assert.Equal(t, models.CategoryCancellation, entries[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeRepository_LoadAll_QueryError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewKnowledgeRepository(mock, zap.NewNop())

	mock.ExpectQuery("SELECT (.+) FROM faq_entries").WillReturnError(errors.New("connection refused"))

	_, err := repo.LoadAll(context.Background())

	assert.ErrorContains(t, err, "failed to query faq entries")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS faq_entries").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS faq_entries_position_idx").WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS unmatched_queries").WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS unmatched_queries_created_at_idx").WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	require.NoError(t, EnsureSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS faq_entries").WillReturnError(errors.New("permission denied"))

	err := EnsureSchema(context.Background(), mock)

	assert.ErrorContains(t, err, "failed to apply schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}
