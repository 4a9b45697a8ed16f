package gallery

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// ListFilter narrows and pages an image listing. A nil CategoryID means all
// categories.
type ListFilter struct {
	CategoryID *int64
	Limit      int
	Offset     int
}

// Repository is the record-store contract for gallery images.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*models.GalleryImage, int64, error)
	GetByID(ctx context.Context, id int64) (*models.GalleryImage, error)
	Featured(ctx context.Context, limit int) ([]*models.GalleryImage, error)
	Related(ctx context.Context, id int64, categoryID *int64, limit int) ([]*models.GalleryImage, error)
	Create(ctx context.Context, image *models.GalleryImage) (*models.GalleryImage, error)
	Update(ctx context.Context, image *models.GalleryImage) error
	Delete(ctx context.Context, id int64) error
}
