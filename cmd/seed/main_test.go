package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taxi-faq/internal/knowledge"
	"taxi-faq/internal/models"
)

const seedKB = `[
  {"id": "topup", "question": "Как пополнить баланс?", "keywords": ["баланс"], "answer": "Профиль > Пополнить", "category": "payment"},
  {"id": "cancel", "question": "Как отменить заказ?", "keywords": ["отмена"], "answer": "Нажмите «Отменить»."}
]`

type fakeStore struct {
	calls   int
	entries []models.KnowledgeEntry
	err     error
}

func (f *fakeStore) ReplaceAll(_ context.Context, entries []models.KnowledgeEntry) error {
	f.calls++
	f.entries = entries
	return f.err
}

func TestSeedKnowledgeBase_SkipsUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.json")
	cacheFile := filepath.Join(dir, ".seed_cache.json")
	require.NoError(t, os.WriteFile(path, []byte(seedKB), 0o644))

	store := &fakeStore{}
	ctx := context.Background()

	require.NoError(t, seedKnowledgeBase(ctx, path, cacheFile, false, store, zap.NewNop()))
	assert.Equal(t, 1, store.calls)
	require.Len(t, store.entries, 2)
	assert.Equal(t, "topup", store.entries[0].ID)
	assert.Equal(t, models.CategoryPayment, store.entries[0].Category)

	cache, err := loadCache(cacheFile)
	require.NoError(t, err)
	require.Contains(t, cache.ProcessedFiles, path)
	assert.Equal(t, 2, cache.ProcessedFiles[path].Entries)

	require.NoError(t, seedKnowledgeBase(ctx, path, cacheFile, false, store, zap.NewNop()))
	assert.Equal(t, 1, store.calls, "unchanged file must not be imported again")

	require.NoError(t, seedKnowledgeBase(ctx, path, cacheFile, true, store, zap.NewNop()))
	assert.Equal(t, 2, store.calls)

	require.NoError(t, os.WriteFile(path, []byte(seedKB[:len(seedKB)-2]+`,
  {"id": "child", "question": "Есть ли детское кресло?", "answer": "Да."}]`), 0o644))
	require.NoError(t, seedKnowledgeBase(ctx, path, cacheFile, false, store, zap.NewNop()))
	assert.Equal(t, 3, store.calls)
	assert.Len(t, store.entries, 3)
}

func TestSeedKnowledgeBase_StoreErrorKeepsCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.json")
	cacheFile := filepath.Join(dir, ".seed_cache.json")
	require.NoError(t, os.WriteFile(path, []byte(seedKB), 0o644))

	store := &fakeStore{err: errors.New("connection reset")}
	err := seedKnowledgeBase(context.Background(), path, cacheFile, false, store, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	_, statErr := os.Stat(cacheFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSeedKnowledgeBase_MissingFile(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}

	err := seedKnowledgeBase(context.Background(), filepath.Join(dir, "nope.json"), filepath.Join(dir, "cache.json"), false, store, zap.NewNop())
	assert.ErrorIs(t, err, knowledge.ErrSourceUnreadable)
	assert.Zero(t, store.calls)
}

func TestLoadCache_Corrupt(t *testing.T) {
	cacheFile := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(cacheFile, []byte("{not json"), 0o644))

	_, err := loadCache(cacheFile)
	assert.Error(t, err)
}

func TestCalculateFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	hash, err := calculateFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", hash)
}
