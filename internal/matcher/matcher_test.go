package matcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"taxi-faq/internal/models"
	"taxi-faq/pkg/config"
)

func testEntries() []models.KnowledgeEntry {
	return []models.KnowledgeEntry{
		{
			ID:       "topup",
			Question: "как пополнить баланс",
			Keywords: []string{"баланс", "пополнить"},
			Answer:   "Go to Profile > Top up",
			Category: models.CategoryPayment,
		},
		{
			ID:         "surge",
			Question:   "Почему такая высокая цена поездки?",
			Variations: []string{"откуда наценка", "почему выросла стоимость"},
			Keywords:   []string{"наценка", "коэффициент", "цена"},
			Answer:     "Цена растёт при высоком спросе.",
			Category:   models.CategoryPricing,
		},
		{
			ID:         "cancel",
			Question:   "Как отменить заказ?",
			Variations: []string{"хочу отменить поездку", "можно ли отменить вызов"},
			Keywords:   []string{"отмена", "отменить"},
			Answer:     "Нажмите «Отменить» на экране поездки.",
			Category:   models.CategoryCancellation,
		},
		{
			ID:         "child",
			Question:   "Можно ли заказать детское кресло?",
			Variations: []string{"есть ли кресло для ребенка"},
			Keywords:   []string{"кресло", "ребенок"},
			Answer:     "Выберите опцию «Детское кресло» при заказе.",
			Category:   models.CategoryBooking,
		},
		{
			ID:         "lost",
			Question:   "Я забыл вещи в машине",
			Variations: []string{"потерял телефон в такси"},
			Keywords:   []string{"вещи", "забыл", "потерял"},
			Answer:     "Свяжитесь с водителем через историю поездок.",
			Category:   models.CategoryDriver,
		},
	}
}

func newTestMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	m, err := New(testEntries(), nil, zaptest.NewLogger(t), opts...)
	require.NoError(t, err)
	return m
}

func TestMatcher_CanonicalQuestionIsExact(t *testing.T) {
	m := newTestMatcher(t)

	for _, e := range testEntries() {
		t.Run(e.ID, func(t *testing.T) {
			res := m.Match(e.Question)
			assert.Equal(t, e.ID, res.EntryID)
			assert.Equal(t, 1.0, res.Confidence)
			assert.Equal(t, models.MatchBasisExact, res.Basis)
			assert.Equal(t, e.Answer, res.Answer)
		})
	}
}

func TestMatcher_VariationsMatchOwner(t *testing.T) {
	m := newTestMatcher(t)
	floor := config.DefaultMatcherConfig().MinConfidence

	for _, e := range testEntries() {
		for _, v := range e.Variations {
			t.Run(v, func(t *testing.T) {
				res := m.Match(v)
				assert.Equal(t, e.ID, res.EntryID)
				assert.GreaterOrEqual(t, res.Confidence, floor)
			})
		}
	}
}

func TestMatcher_Scenario(t *testing.T) {
	m := newTestMatcher(t)

	exact := m.Match("как пополнить баланс")
	assert.Equal(t, "topup", exact.EntryID)
	assert.Equal(t, 1.0, exact.Confidence)
	assert.Equal(t, "Go to Profile > Top up", exact.Answer)

	inflected := m.Match("балансы")
	assert.Equal(t, "topup", inflected.EntryID)
	assert.Equal(t, models.MatchBasisKeyword, inflected.Basis)
	assert.Equal(t, 0.75, inflected.Confidence)
	assert.Equal(t, []string{"баланс"}, inflected.MatchedTerms)

	unrelated := m.Match("где мой водитель")
	assert.False(t, unrelated.Matched())
	assert.Empty(t, unrelated.EntryID)
	assert.Equal(t, models.MatchBasisFallback, unrelated.Basis)
	assert.Equal(t, 0.0, unrelated.Confidence)
	assert.Equal(t, config.DefaultMatcherConfig().FallbackAnswer, unrelated.Answer)
	assert.Equal(t, models.CategoryDriver, unrelated.QueryCategory)
	assert.Empty(t, unrelated.Suggestions)
}

func TestMatcher_EmptyQueryFallsBack(t *testing.T) {
	m := newTestMatcher(t)

	for _, q := range []string{"", "   ", "\t\n", "?!.."} {
		res := m.Match(q)
		assert.Equal(t, models.MatchBasisFallback, res.Basis, "query %q", q)
		assert.Empty(t, res.EntryID)
		assert.Equal(t, 0.0, res.Confidence)
		assert.Equal(t, models.CategoryGeneral, res.QueryCategory)
		assert.Empty(t, res.Suggestions)
	}
}

func TestMatcher_Deterministic(t *testing.T) {
	m := newTestMatcher(t)

	for _, q := range []string{"балансы", "поездка", "отменить детское кресло", "где мой водитель"} {
		assert.Equal(t, m.Match(q), m.Match(q), "query %q", q)
	}
}

func TestMatcher_DisjointKeywords(t *testing.T) {
	m := newTestMatcher(t)

	for _, e := range testEntries() {
		t.Run(e.ID, func(t *testing.T) {
			for _, k := range e.Keywords {
				res := m.Match(k)
				if res.Matched() {
					assert.Equal(t, e.ID, res.EntryID, "keyword %q", k)
				}
			}

			var query string
			for i := len(e.Keywords) - 1; i >= 0; i-- {
				query += e.Keywords[i] + " "
			}
			assert.Equal(t, e.ID, m.Match(query).EntryID)
		})
	}
}

func TestMatcher_ContainmentNeedsOwnKeyword(t *testing.T) {
	entries := []models.KnowledgeEntry{
		{
			ID:       "topup",
			Question: "Как пополнить счет?",
			Keywords: []string{"баланс", "пополнить"},
			Answer:   "Профиль > Пополнить",
			Category: models.CategoryPayment,
		},
		{
			ID:         "card",
			Question:   "Почему списали деньги с карты?",
			Variations: []string{"пополнить баланс картой не получается"},
			Keywords:   []string{"карта", "списание"},
			Answer:     "Проверьте лимиты карты.",
			Category:   models.CategoryPayment,
		},
		{
			ID:       "plain",
			Question: "Как работает сервис заказа такси",
			Answer:   "Через приложение.",
		},
	}
	m, err := New(entries, nil, zap.NewNop())
	require.NoError(t, err)

	res := m.Match("пополнить баланс")
	assert.Equal(t, "topup", res.EntryID)
	assert.Equal(t, models.MatchBasisKeyword, res.Basis)
	assert.Equal(t, 0.95, res.Confidence)

	// entries without keywords still match by containment
	plain := m.Match("работает сервис заказа")
	assert.Equal(t, "plain", plain.EntryID)
	assert.Equal(t, models.MatchBasisExact, plain.Basis)
	assert.Equal(t, 0.5, plain.Confidence)
}

func TestMatcher_KeywordTier(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("наценки")

	assert.Equal(t, "surge", res.EntryID)
	assert.Equal(t, models.MatchBasisKeyword, res.Basis)
	// keyword 2.0 + variation 0.5 over a ceiling of 4.0
	assert.Equal(t, 0.625, res.Confidence)
	assert.Equal(t, models.CategoryPricing, res.QueryCategory)
	assert.Equal(t, []string{"наценка"}, res.MatchedTerms)
}

func TestMatcher_KeywordConfidenceStaysBelowExact(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("вещи забыл потерял")

	assert.Equal(t, "lost", res.EntryID)
	assert.Equal(t, config.DefaultMatcherConfig().KeywordMaxConfidence, res.Confidence)
}

func TestMatcher_Containment(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("Подскажите, как отменить заказ, пожалуйста")
	assert.Equal(t, "cancel", res.EntryID)
	assert.Equal(t, models.MatchBasisExact, res.Basis)
	assert.Equal(t, 0.5, res.Confidence)

	// a single content word is too weak for containment
	single := m.Match("отменить")
	assert.Equal(t, "cancel", single.EntryID)
	assert.Equal(t, models.MatchBasisKeyword, single.Basis)
	assert.Equal(t, 0.875, single.Confidence)
}

func TestMatcher_TieBreaksOnLoadOrder(t *testing.T) {
	entries := []models.KnowledgeEntry{
		{ID: "first", Question: "первый вопрос", Keywords: []string{"тариф"}, Answer: "1"},
		{ID: "second", Question: "второй вопрос", Keywords: []string{"тариф"}, Answer: "2"},
	}

	m, err := New(entries, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "first", m.Match("тарифы").EntryID)

	entries[0], entries[1] = entries[1], entries[0]
	m, err = New(entries, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "second", m.Match("тарифы").EntryID)
}

func TestMatcher_FallbackSuggestions(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("поездка")
	assert.Equal(t, models.MatchBasisFallback, res.Basis)
	assert.Equal(t, []string{"Почему такая высокая цена поездки?", "Как отменить заказ?"}, res.Suggestions)

	cfg := config.DefaultMatcherConfig()
	cfg.Suggestions = 1
	limited, err := New(testEntries(), &cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Почему такая высокая цена поездки?"}, limited.Match("поездка").Suggestions)
}

func TestMatcher_Fuzzy(t *testing.T) {
	m := newTestMatcher(t)

	res := m.Match("детское кресо")
	assert.Equal(t, "child", res.EntryID)
	assert.Equal(t, models.MatchBasisKeyword, res.Basis)
	assert.Equal(t, 0.5, res.Confidence)
	assert.Equal(t, []string{"детское", "кресло"}, res.MatchedTerms)

	cfg := config.DefaultMatcherConfig()
	cfg.FuzzyEnabled = false
	strict, err := New(testEntries(), &cfg, zap.NewNop())
	require.NoError(t, err)

	res = strict.Match("детское кресо")
	assert.Equal(t, models.MatchBasisFallback, res.Basis)
	assert.Equal(t, []string{"Можно ли заказать детское кресло?"}, res.Suggestions)
}

func TestMatcher_MatchInCategory(t *testing.T) {
	m := newTestMatcher(t)

	tests := []struct {
		name     string
		category models.Category
		wantID   string
	}{
		{"same category", models.CategoryPayment, "topup"},
		{"other category", models.CategoryPricing, ""},
		{"general is unscoped", models.CategoryGeneral, "topup"},
		{"empty is unscoped", "", "topup"},
		{"unknown is unscoped", models.Category("weather"), "topup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.MatchInCategory("как пополнить баланс", tt.category)
			assert.Equal(t, tt.wantID, res.EntryID)
		})
	}
}

func TestMatcher_CategoryMismatchIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m, err := New(testEntries(), nil, zap.New(core))
	require.NoError(t, err)

	res := m.Match("отменить детское кресло")

	assert.Equal(t, "child", res.EntryID)
	assert.Equal(t, models.CategoryBooking, res.Category)
	assert.Equal(t, models.CategoryCancellation, res.QueryCategory)
	assert.Equal(t, 1, logs.FilterMessage("Matched entry category differs from query category").Len())
}

func TestMatcher_WithStemmer(t *testing.T) {
	identity := func(w string) string { return w }
	m := newTestMatcher(t, WithStemmer(identity))

	assert.Equal(t, "topup", m.Match("баланс").EntryID)
	assert.Equal(t, models.MatchBasisFallback, m.Match("балансы").Basis)
}

func TestNew_Errors(t *testing.T) {
	valid := models.KnowledgeEntry{ID: "a", Question: "вопрос", Answer: "ответ"}

	tests := []struct {
		name    string
		entries []models.KnowledgeEntry
		wantErr error
	}{
		{"no entries", nil, ErrNoEntries},
		{"missing answer", []models.KnowledgeEntry{{ID: "a", Question: "вопрос"}}, ErrInvalidEntry},
		{"missing id", []models.KnowledgeEntry{{Question: "вопрос", Answer: "ответ"}}, ErrInvalidEntry},
		{"duplicate id", []models.KnowledgeEntry{valid, valid}, ErrInvalidEntry},
		{"nothing to match", []models.KnowledgeEntry{{ID: "a", Answer: "ответ", Keywords: []string{"как"}}}, ErrInvalidEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries, nil, zap.NewNop())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	cfg := config.DefaultMatcherConfig()
	cfg.ScoreCeiling = 0
	_, err := New([]models.KnowledgeEntry{valid}, &cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestMatcher_EntriesAreCopies(t *testing.T) {
	m := newTestMatcher(t)

	entries := m.Entries()
	require.Len(t, entries, 5)
	assert.Equal(t, "topup", entries[0].ID)
	assert.Equal(t, "lost", entries[4].ID)

	entries[0].Keywords[0] = "changed"
	e, ok := m.Entry("topup")
	require.True(t, ok)
	assert.Equal(t, "баланс", e.Keywords[0])

	_, ok = m.Entry("missing")
	assert.False(t, ok)
}

func TestMatcher_UnknownEntryCategoryBecomesGeneral(t *testing.T) {
	m, err := New([]models.KnowledgeEntry{
		{ID: "a", Question: "вопрос", Answer: "ответ", Category: "weather"},
	}, nil, zap.NewNop())
	require.NoError(t, err)

	e, ok := m.Entry("a")
	require.True(t, ok)
	assert.Equal(t, models.CategoryGeneral, e.Category)
}

func TestMatcher_Stats(t *testing.T) {
	m := newTestMatcher(t)

	stats := m.Stats()
	assert.Equal(t, 5, stats.Entries)
	assert.Equal(t, 11, stats.Phrases)
	assert.Equal(t, 11, stats.KeywordStems)
	assert.Greater(t, stats.Terms, stats.KeywordStems)
}

func TestMatcher_ConcurrentReaders(t *testing.T) {
	m := newTestMatcher(t)
	want := m.Match("балансы")

	var wg sync.WaitGroup
	results := make([]models.MatchResult, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Match("балансы")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
