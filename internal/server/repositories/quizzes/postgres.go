// Package quizzes provides the PostgreSQL-backed repository for quizzes and
// quiz results.
package quizzes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// PostgresRepository implements quiz storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all quizzes, newest first. The question documents are
// included as stored.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Quiz, error) {
	query :=
		`SELECT id, title, description, questions, created_at FROM quizzes
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Quiz
	for rows.Next() {
		var item models.Quiz
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Questions, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetByID fetches one quiz with its full question document.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Quiz, error) {
	query :=
		`SELECT id, title, description, questions, created_at FROM quizzes
		 WHERE id = $1
		 `

	item := &models.Quiz{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title, &item.Description, &item.Questions, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// SaveResult records a submitted answer set and its score for a user.
func (r *PostgresRepository) SaveResult(ctx context.Context, result *models.QuizResult) (*models.QuizResult, error) {
	query :=
		`INSERT INTO quiz_results (user_id, quiz_id, answers, score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		result.UserID, result.QuizID, []byte(result.Answers), result.Score).
		Scan(&result.ID, &result.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
