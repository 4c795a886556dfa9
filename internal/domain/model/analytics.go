package model

import (
	"time"

	"github.com/google/uuid"
)

// SearchAnalyticsRecord captures one successful search for later analysis.
// Writing it is always best-effort: a failed write never fails the search.
type SearchAnalyticsRecord struct {
	ID          uuid.UUID
	Query       string
	Filters     string // canonical filter serialization, empty when unfiltered
	ResultCount int
	CreatedAt   time.Time
}

// NewSearchAnalyticsRecord builds a record for a completed search.
func NewSearchAnalyticsRecord(query, filters string, resultCount int) *SearchAnalyticsRecord {
	return &SearchAnalyticsRecord{
		ID:          uuid.New(),
		Query:       query,
		Filters:     filters,
		ResultCount: resultCount,
		CreatedAt:   time.Now().UTC(),
	}
}
