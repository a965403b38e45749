package models

import (
	"time"

	"github.com/google/uuid"
)

// UnmatchedQuery is a question that fell through to the fallback answer.
// Support staff review these to grow the knowledge base.
type UnmatchedQuery struct {
	ID          uuid.UUID `db:"id"`
	Question    string    `db:"question"`
	Category    Category  `db:"category"`
	Suggestions []string  `db:"suggestions"`
	CreatedAt   time.Time `db:"created_at"`
}
