package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KNOWLEDGE_SOURCE", "")
	t.Setenv("MATCH_MIN_CONFIDENCE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, KnowledgeSourceFile, cfg.Knowledge.Source)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, DefaultMatcherConfig(), cfg.Matcher)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MATCH_KEYWORD_WEIGHT", "3")
	t.Setenv("MATCH_MIN_CONFIDENCE", "0.3")
	t.Setenv("MATCH_FUZZY_ENABLED", "false")
	t.Setenv("MATCH_SUGGESTIONS", "5")
	t.Setenv("MATCH_SCORE_CEILING", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3.0, cfg.Matcher.KeywordWeight)
	assert.Equal(t, 0.3, cfg.Matcher.MinConfidence)
	assert.False(t, cfg.Matcher.FuzzyEnabled)
	assert.Equal(t, 5, cfg.Matcher.Suggestions)
	// unparsable values fall back to the default
	assert.Equal(t, 4.0, cfg.Matcher.ScoreCeiling)
}

func TestLoad_PostgresSourceRequiresDatabase(t *testing.T) {
	t.Setenv("KNOWLEDGE_SOURCE", "postgres")
	t.Setenv("DB_ENABLED", "false")

	_, err := Load()
	assert.Error(t, err)
}

func TestMatcherConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *MatcherConfig)
		valid  bool
	}{
		{name: "defaults", mutate: func(m *MatcherConfig) {}, valid: true},
		{name: "zero keyword weight", mutate: func(m *MatcherConfig) { m.KeywordWeight = 0 }},
		{name: "negative ceiling", mutate: func(m *MatcherConfig) { m.ScoreCeiling = -1 }},
		{name: "confidence above one", mutate: func(m *MatcherConfig) { m.MinConfidence = 1.5 }},
		{name: "fuzzy threshold below zero", mutate: func(m *MatcherConfig) { m.FuzzyThreshold = -0.1 }},
		{name: "no containment tokens", mutate: func(m *MatcherConfig) { m.MinContainmentTokens = 0 }},
		{name: "blank fallback", mutate: func(m *MatcherConfig) { m.FallbackAnswer = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMatcherConfig()
			tt.mutate(&m)
			err := m.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
