package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"taxi-faq/internal/api"
	"taxi-faq/internal/api/handlers"
	"taxi-faq/internal/knowledge"
	"taxi-faq/internal/matcher"
	"taxi-faq/internal/metrics"
	"taxi-faq/internal/repository"
	"taxi-faq/internal/service"
	"taxi-faq/pkg/config"
	"taxi-faq/pkg/logger"
	"taxi-faq/pkg/postgres"
)

// @title Taxi FAQ API
// @version 1.0
// @description Ответы на частые вопросы пользователей такси-агрегатора

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting taxi FAQ service",
		zap.String("knowledge_source", cfg.Knowledge.Source),
		zap.Bool("database", cfg.Database.Enabled),
	)

	ctx := context.Background()

	// Database is optional unless the knowledge base lives there
	var db *pgxpool.Pool
	if cfg.Database.Enabled {
		db, err = postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := repository.EnsureSchema(ctx, db); err != nil {
			appLogger.Fatal("Failed to prepare database schema", zap.Error(err))
		}
	}

	report, err := loadKnowledge(ctx, cfg, db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry)
	recorder.SetKnowledgeBase(len(report.Entries), len(report.Skipped))

	faqMatcher, err := matcher.New(report.Entries, &cfg.Matcher, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build FAQ matcher", zap.Error(err))
	}

	// Unanswered questions are only kept when there is somewhere to keep them
	var store service.UnmatchedQueryStore
	if db != nil {
		store = repository.NewQueryLogRepository(db, appLogger)
	}

	faqService := service.NewFAQService(faqMatcher, store, recorder, appLogger)

	// Initialize handlers
	faqHandler := handlers.NewFAQHandler(faqService, appLogger)
	healthHandler := handlers.NewHealthHandler(faqService)

	// Setup router
	app := api.SetupRouter(faqHandler, healthHandler, registry, cfg, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

func loadKnowledge(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, appLogger *zap.Logger) (*knowledge.LoadReport, error) {
	loader := knowledge.NewLoader(appLogger)

	if cfg.Knowledge.Source != config.KnowledgeSourcePostgres {
		return loader.LoadFile(cfg.Knowledge.Path)
	}

	entries, err := repository.NewKnowledgeRepository(db, appLogger).LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base from database: %w", err)
	}
	return loader.FromEntries(entries, "postgres:faq_entries")
}
