package quizzes

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// Repository is the record-store contract for quizzes and submitted results.
type Repository interface {
	List(ctx context.Context) ([]*models.Quiz, error)
	GetByID(ctx context.Context, id int64) (*models.Quiz, error)
	SaveResult(ctx context.Context, result *models.QuizResult) (*models.QuizResult, error)
}
