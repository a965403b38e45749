package knowledge

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taxi-faq/internal/matcher"
	"taxi-faq/internal/models"
)

var (
	ErrSourceUnreadable   = errors.New("knowledge source is unreadable")
	ErrEmptyKnowledgeBase = errors.New("knowledge base has no valid entries")
	ErrUnknownFormat      = errors.New("unknown knowledge source format")
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatBlocks   Format = "blocks"
	FormatDatabase Format = "database"
)

// idNamespace seeds the ids generated for records that do not carry one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("taxi-faq/knowledge"))

// RecordError describes a source record that was skipped. Position is
// 1-based in source order.
type RecordError struct {
	Position int    `json:"position"`
	ID       string `json:"id,omitempty"`
	Reason   string `json:"reason"`
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (%s): %s", e.Position, e.ID, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Position, e.Reason)
}

// LoadReport is the outcome of a successful load.
type LoadReport struct {
	Entries []models.KnowledgeEntry
	Skipped []RecordError
	Format  Format
	Source  string
}

// draft is a record as read from the source, before validation.
type draft struct {
	position   int
	id         string
	question   string
	variations []string
	keywords   []string
	answer     string
	category   string
	err        string // set by the parser when the record is unusable
}

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadFile reads and parses a knowledge file. A missing or unreadable file and
// a file without a single valid record are errors; individual bad records are
// reported in LoadReport.Skipped.
func (l *Loader) LoadFile(path string) (*LoadReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}
	return l.Parse(data, path)
}

// Parse detects the format of data and builds the entries.
func (l *Loader) Parse(data []byte, source string) (*LoadReport, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrEmptyKnowledgeBase, source)
	}

	var (
		format Format
		drafts []draft
		err    error
	)
	switch trimmed[0] {
	case '[', '{':
		format = FormatJSON
		drafts, err = parseJSON(trimmed)
	default:
		format = FormatBlocks
		drafts, err = parseBlocks(trimmed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	return l.build(drafts, format, source)
}

// FromEntries validates entries that come from storage rather than a file,
// applying the same rules as Parse.
func (l *Loader) FromEntries(entries []models.KnowledgeEntry, source string) (*LoadReport, error) {
	drafts := make([]draft, len(entries))
	for i, e := range entries {
		drafts[i] = draft{
			position:   i + 1,
			id:         e.ID,
			question:   e.Question,
			variations: e.Variations,
			keywords:   e.Keywords,
			answer:     e.Answer,
			category:   string(e.Category),
		}
	}
	return l.build(drafts, FormatDatabase, source)
}

func (l *Loader) build(drafts []draft, format Format, source string) (*LoadReport, error) {
	report := &LoadReport{
		Entries: make([]models.KnowledgeEntry, 0, len(drafts)),
		Format:  format,
		Source:  source,
	}
	seen := make(map[string]struct{}, len(drafts))

	for _, d := range drafts {
		entry, reason := l.toEntry(d)
		if reason == "" {
			if _, dup := seen[entry.ID]; dup {
				reason = "duplicate id"
			}
		}
		if reason != "" {
			recErr := RecordError{Position: d.position, ID: d.id, Reason: reason}
			report.Skipped = append(report.Skipped, recErr)
			l.logger.Warn("Skipping knowledge record",
				zap.String("source", source),
				zap.Int("position", d.position),
				zap.String("id", d.id),
				zap.String("reason", reason),
			)
			continue
		}

		seen[entry.ID] = struct{}{}
		report.Entries = append(report.Entries, entry)
	}

	if len(report.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s (%d records skipped)", ErrEmptyKnowledgeBase, source, len(report.Skipped))
	}

	l.logger.Info("Knowledge base loaded",
		zap.String("source", source),
		zap.String("format", string(format)),
		zap.Int("entries", len(report.Entries)),
		zap.Int("skipped", len(report.Skipped)),
	)

	return report, nil
}

// toEntry validates a draft. A non-empty reason means the record is skipped.
func (l *Loader) toEntry(d draft) (models.KnowledgeEntry, string) {
	if d.err != "" {
		return models.KnowledgeEntry{}, d.err
	}

	answer := strings.TrimSpace(d.answer)
	if answer == "" {
		return models.KnowledgeEntry{}, "missing answer"
	}

	// text that normalizes to nothing can never be matched
	question := strings.TrimSpace(d.question)
	if matcher.Normalize(question) == "" {
		question = ""
	}
	variations := matchable(cleanList(d.variations, false))
	if question == "" && len(variations) > 0 {
		question, variations = variations[0], variations[1:]
	}
	if question == "" {
		return models.KnowledgeEntry{}, "empty question"
	}

	entry := models.KnowledgeEntry{
		ID:         strings.TrimSpace(d.id),
		Question:   question,
		Variations: variations,
		Keywords:   matchable(cleanList(d.keywords, true)),
		Answer:     answer,
	}

	if entry.ID == "" {
		name := matcher.Normalize(question) + "|" + matcher.Normalize(answer)
		entry.ID = uuid.NewSHA1(idNamespace, []byte(name)).String()
	}

	category, err := models.ParseCategory(d.category)
	if err != nil {
		if strings.TrimSpace(d.category) != "" {
			l.logger.Debug("Unknown category, deriving from question",
				zap.String("id", entry.ID),
				zap.String("category", d.category),
			)
		}
		category = matcher.Classify(question + " " + strings.Join(entry.Keywords, " "))
	}
	entry.Category = category

	return entry, ""
}

func matchable(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if matcher.Normalize(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// cleanList trims items, splits comma separated keywords and drops empty
// and repeated values.
func cleanList(items []string, keywords bool) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		parts := []string{item}
		if keywords {
			parts = strings.Split(item, ",")
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if keywords {
				p = strings.ToLower(p)
			}
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
