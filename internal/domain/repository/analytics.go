package repository

import (
	"context"

	"github.com/reelworks/reelgate/internal/domain/model"
)

// SearchAnalyticsRepository persists search analytics records.
// Implementations are provided by the infrastructure layer (PostgreSQL).
type SearchAnalyticsRepository interface {
	// Insert persists a single analytics record.
	Insert(ctx context.Context, rec *model.SearchAnalyticsRecord) error
}
