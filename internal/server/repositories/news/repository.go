package news

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// ListFilter narrows and pages a news listing. A nil CategoryID means all
// categories.
type ListFilter struct {
	CategoryID *int64
	Limit      int
	Offset     int
}

// Repository is the record-store contract for news articles.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*models.News, int64, error)
	GetByID(ctx context.Context, id int64) (*models.News, error)
	Create(ctx context.Context, item *models.News) (*models.News, error)
	Update(ctx context.Context, item *models.News) error
	Delete(ctx context.Context, id int64) error
}
