package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"taxi-faq/internal/knowledge"
	"taxi-faq/internal/models"
	"taxi-faq/internal/repository"
	"taxi-faq/pkg/config"
	"taxi-faq/pkg/logger"
	"taxi-faq/pkg/postgres"
)

// seed imports the knowledge file into the faq_entries table. Usage:
//
//	seed [path]
//
// The path defaults to KNOWLEDGE_PATH. Unchanged files are skipped unless
// SEED_FORCE is set.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	path := cfg.Knowledge.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		appLogger.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)

	appLogger.Info("Starting knowledge base seeding...", zap.String("path", path))

	if err := seedKnowledgeBase(ctx, path, cfg.Knowledge.SeedCache, cfg.Knowledge.SeedForce, knowledgeRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed knowledge base", zap.Error(err))
	}

	appLogger.Info("Knowledge base seeding completed successfully!")
}

// ProcessedFile represents an imported knowledge file in cache
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	Entries     int       `json:"entries"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about imported files
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

// loadCache loads the cache of imported files
func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	if _, err := os.Stat(cacheFile); os.IsNotExist(err) {
		return cache, nil
	}

	data, err := os.ReadFile(cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}

	return cache, nil
}

// saveCache saves the cache of imported files
func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// knowledgeStore is satisfied by repository.KnowledgeRepository.
type knowledgeStore interface {
	ReplaceAll(ctx context.Context, entries []models.KnowledgeEntry) error
}

// seedKnowledgeBase validates the file with the same loader the service uses
// and replaces the stored entries with it.
func seedKnowledgeBase(
	ctx context.Context,
	path string,
	cacheFile string,
	force bool,
	repo knowledgeStore,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will import anyway", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	fileHash, err := calculateFileHash(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", knowledge.ErrSourceUnreadable, path, err)
	}

	if cached, exists := cache.ProcessedFiles[path]; exists && !force {
		if cached.FileHash == fileHash {
			logger.Info("Knowledge file already imported, skipping",
				zap.String("path", path),
				zap.Time("processed_at", cached.ProcessedAt),
			)
			return nil
		}
		logger.Info("Knowledge file changed, reimporting",
			zap.String("path", path),
			zap.String("old_hash", cached.FileHash),
			zap.String("new_hash", fileHash),
		)
	}

	report, err := knowledge.NewLoader(logger).LoadFile(path)
	if err != nil {
		return err
	}
	for _, skipped := range report.Skipped {
		logger.Warn("Record not imported", zap.String("reason", skipped.Error()))
	}

	if err := repo.ReplaceAll(ctx, report.Entries); err != nil {
		return fmt.Errorf("failed to store knowledge base: %w", err)
	}

	cache.ProcessedFiles[path] = ProcessedFile{
		FilePath:    path,
		FileHash:    fileHash,
		Entries:     len(report.Entries),
		ProcessedAt: time.Now(),
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved", zap.Int("processed_files", len(cache.ProcessedFiles)))
	}

	return nil
}
