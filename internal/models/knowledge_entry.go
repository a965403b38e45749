package models

// KnowledgeEntry is one curated FAQ record. Entries are loaded once at
// startup and never mutated afterwards.
type KnowledgeEntry struct {
	ID         string   `json:"id" db:"id"`
	Question   string   `json:"question" db:"question"`
	Variations []string `json:"variations" db:"variations"` // alternate phrasings, display order
	Keywords   []string `json:"keywords" db:"keywords"`
	Answer     string   `json:"answer" db:"answer"`
	Category   Category `json:"category" db:"category"`
}

// Clone returns a deep copy so callers cannot alias the loaded table.
func (e KnowledgeEntry) Clone() KnowledgeEntry {
	out := e
	out.Variations = append([]string(nil), e.Variations...)
	out.Keywords = append([]string(nil), e.Keywords...)
	return out
}
