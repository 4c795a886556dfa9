package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reelworks/reelgate/internal/domain/model"
	"github.com/reelworks/reelgate/internal/domain/repository"
)

// DBTX abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SearchAnalyticsRepository implements repository.SearchAnalyticsRepository
// using PostgreSQL.
type SearchAnalyticsRepository struct {
	db DBTX
}

// NewSearchAnalyticsRepository creates a new SearchAnalyticsRepository.
func NewSearchAnalyticsRepository(db DBTX) *SearchAnalyticsRepository {
	return &SearchAnalyticsRepository{db: db}
}

// Insert persists a single search analytics record.
func (r *SearchAnalyticsRepository) Insert(ctx context.Context, rec *model.SearchAnalyticsRecord) error {
	const query = `
		INSERT INTO search_analytics (id, query, filters, result_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.Query,
		nullString(rec.Filters),
		rec.ResultCount,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert search analytics record: %w", err)
	}

	return nil
}

// nullString returns nil for empty strings, otherwise a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that SearchAnalyticsRepository implements
// repository.SearchAnalyticsRepository.
var _ repository.SearchAnalyticsRepository = (*SearchAnalyticsRepository)(nil)
