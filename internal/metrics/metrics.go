package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"taxi-faq/internal/models"
)

// Recorder groups the FAQ service metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	matches          *prometheus.CounterVec
	confidence       *prometheus.HistogramVec
	categoryMismatch *prometheus.CounterVec
	matchDuration    prometheus.Histogram
	entries          prometheus.Gauge
	skipped          prometheus.Gauge
	unmatchedErrors  prometheus.Counter
}

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		matches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_matches_total",
				Help: "Total number of questions by match basis and category",
			},
			[]string{"basis", "category"},
		),
		confidence: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faq_match_confidence",
				Help:    "Confidence of returned answers",
				Buckets: []float64{0, 0.25, 0.4, 0.5, 0.6, 0.75, 0.9, 1},
			},
			[]string{"basis"},
		),
		categoryMismatch: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_category_mismatch_total",
				Help: "Matches whose entry category differs from the classified query category",
			},
			[]string{"query_category", "entry_category"},
		),
		matchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "faq_match_duration_seconds",
				Help:    "Time spent matching a single question",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		entries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "faq_knowledge_entries",
				Help: "Number of loaded knowledge base entries",
			},
		),
		skipped: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "faq_knowledge_skipped_records",
				Help: "Number of knowledge records skipped at load time",
			},
		),
		unmatchedErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "faq_unmatched_log_errors_total",
				Help: "Failed writes to the unmatched query log",
			},
		),
	}
}

// ObserveMatch records one question, fallbacks included.
func (r *Recorder) ObserveMatch(res models.MatchResult, elapsed time.Duration) {
	if r == nil {
		return
	}

	basis := string(res.Basis)
	r.matches.WithLabelValues(basis, string(res.Category)).Inc()
	r.confidence.WithLabelValues(basis).Observe(res.Confidence)
	r.matchDuration.Observe(elapsed.Seconds())

	if res.Matched() && res.QueryCategory != models.CategoryGeneral && res.QueryCategory != res.Category {
		r.categoryMismatch.WithLabelValues(string(res.QueryCategory), string(res.Category)).Inc()
	}
}

// SetKnowledgeBase publishes the size of the loaded knowledge base.
func (r *Recorder) SetKnowledgeBase(entries, skipped int) {
	if r == nil {
		return
	}
	r.entries.Set(float64(entries))
	r.skipped.Set(float64(skipped))
}

func (r *Recorder) UnmatchedLogError() {
	if r == nil {
		return
	}
	r.unmatchedErrors.Inc()
}
