package categories

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// Repository is the record-store contract for content categories.
type Repository interface {
	List(ctx context.Context) ([]*models.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
}
