// Package stats provides the PostgreSQL-backed aggregate queries for the
// admin dashboard.
package stats

import (
	"context"
	"fmt"

	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements the dashboard aggregates over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Collect gathers all table counts in a single round trip.
func (r *PostgresRepository) Collect(ctx context.Context) (*models.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM news),
			(SELECT COUNT(*) FROM forum_topics),
			(SELECT COUNT(*) FROM gallery_images),
			(SELECT COUNT(*) FROM quizzes),
			(SELECT COUNT(*) FROM information_topics)
		`

	s := &models.Stats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.UserCount, &s.NewsCount, &s.ForumTopicsCount,
		&s.ImagesCount, &s.QuizzesCount, &s.InformationTopicsCount,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}
