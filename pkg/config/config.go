package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	KnowledgeSourceFile     = "file"
	KnowledgeSourcePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Knowledge KnowledgeConfig
	Matcher   MatcherConfig
	Metrics   MetricsConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Enabled     bool
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	PingTimeout time.Duration
}

type KnowledgeConfig struct {
	Source    string // file or postgres
	Path      string
	SeedCache string
	SeedForce bool
}

// MatcherConfig holds the scoring constants of the FAQ matcher. None of them
// were validated against a labelled set, so all are tunable from the
// environment.
type MatcherConfig struct {
	KeywordWeight         float64
	QuestionWeight        float64
	VariationWeight       float64
	ScoreCeiling          float64 // raw keyword-tier score that maps to full confidence
	MinConfidence         float64 // below this the fallback answer is returned
	ContainmentConfidence float64
	KeywordMaxConfidence  float64 // keeps keyword matches below an exact hit
	MinContainmentTokens  int
	Suggestions           int
	FuzzyEnabled          bool
	FuzzyThreshold        float64
	FuzzyPenalty          float64
	FallbackAnswer        string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

const defaultFallbackAnswer = "К сожалению, я не нашёл ответа на ваш вопрос. " +
	"Пожалуйста, напишите в службу поддержки, оператор ответит в ближайшее время."

// DefaultMatcherConfig returns the scoring scheme used when nothing is
// overridden.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		KeywordWeight:         2.0,
		QuestionWeight:        1.0,
		VariationWeight:       0.5,
		ScoreCeiling:          4.0,
		MinConfidence:         0.4,
		ContainmentConfidence: 0.5,
		KeywordMaxConfidence:  0.95,
		MinContainmentTokens:  2,
		Suggestions:           3,
		FuzzyEnabled:          true,
		FuzzyThreshold:        0.9,
		FuzzyPenalty:          0.5,
		FallbackAnswer:        defaultFallbackAnswer,
	}
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	defaults := DefaultMatcherConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 10)) * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:     getEnvBool("DB_ENABLED", false),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "taxi_faq"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    int32(getEnvInt("DB_MAX_CONNS", 4)),
			PingTimeout: time.Duration(getEnvInt("DB_PING_TIMEOUT", 5)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Knowledge: KnowledgeConfig{
			Source:    strings.ToLower(getEnv("KNOWLEDGE_SOURCE", KnowledgeSourceFile)),
			Path:      getEnv("KNOWLEDGE_PATH", "data/faq.json"),
			SeedCache: getEnv("SEED_CACHE_FILE", ".seed_cache.json"),
			SeedForce: getEnvBool("SEED_FORCE", false),
		},
		Matcher: MatcherConfig{
			KeywordWeight:         getEnvFloat("MATCH_KEYWORD_WEIGHT", defaults.KeywordWeight),
			QuestionWeight:        getEnvFloat("MATCH_QUESTION_WEIGHT", defaults.QuestionWeight),
			VariationWeight:       getEnvFloat("MATCH_VARIATION_WEIGHT", defaults.VariationWeight),
			ScoreCeiling:          getEnvFloat("MATCH_SCORE_CEILING", defaults.ScoreCeiling),
			MinConfidence:         getEnvFloat("MATCH_MIN_CONFIDENCE", defaults.MinConfidence),
			ContainmentConfidence: getEnvFloat("MATCH_CONTAINMENT_CONFIDENCE", defaults.ContainmentConfidence),
			KeywordMaxConfidence:  getEnvFloat("MATCH_KEYWORD_MAX_CONFIDENCE", defaults.KeywordMaxConfidence),
			MinContainmentTokens:  getEnvInt("MATCH_MIN_CONTAINMENT_TOKENS", defaults.MinContainmentTokens),
			Suggestions:           getEnvInt("MATCH_SUGGESTIONS", defaults.Suggestions),
			FuzzyEnabled:          getEnvBool("MATCH_FUZZY_ENABLED", defaults.FuzzyEnabled),
			FuzzyThreshold:        getEnvFloat("MATCH_FUZZY_THRESHOLD", defaults.FuzzyThreshold),
			FuzzyPenalty:          getEnvFloat("MATCH_FUZZY_PENALTY", defaults.FuzzyPenalty),
			FallbackAnswer:        getEnv("MATCH_FALLBACK_ANSWER", defaults.FallbackAnswer),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would make the service misbehave silently.
func (c *Config) Validate() error {
	switch c.Knowledge.Source {
	case KnowledgeSourceFile:
		if c.Knowledge.Path == "" {
			return fmt.Errorf("KNOWLEDGE_PATH is required for the file source")
		}
	case KnowledgeSourcePostgres:
		if !c.Database.Enabled {
			return fmt.Errorf("KNOWLEDGE_SOURCE=postgres requires DB_ENABLED=true")
		}
	default:
		return fmt.Errorf("unknown KNOWLEDGE_SOURCE %q", c.Knowledge.Source)
	}
	return c.Matcher.Validate()
}

func (m *MatcherConfig) Validate() error {
	if m.KeywordWeight <= 0 || m.QuestionWeight <= 0 || m.VariationWeight <= 0 {
		return fmt.Errorf("match weights must be positive")
	}
	if m.ScoreCeiling <= 0 {
		return fmt.Errorf("score ceiling must be positive, got %v", m.ScoreCeiling)
	}
	for name, v := range map[string]float64{
		"min confidence":         m.MinConfidence,
		"containment confidence": m.ContainmentConfidence,
		"keyword max confidence": m.KeywordMaxConfidence,
		"fuzzy threshold":        m.FuzzyThreshold,
		"fuzzy penalty":          m.FuzzyPenalty,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, v)
		}
	}
	if m.MinContainmentTokens < 1 {
		return fmt.Errorf("min containment tokens must be at least 1")
	}
	if m.Suggestions < 0 {
		return fmt.Errorf("suggestions must not be negative")
	}
	if strings.TrimSpace(m.FallbackAnswer) == "" {
		return fmt.Errorf("fallback answer must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
