package information

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// ListFilter narrows and pages a topic listing. Search matches a substring
// of title or content; empty means no text filter.
type ListFilter struct {
	CategoryID *int64
	Search     string
	Limit      int
	Offset     int
}

// Repository is the record-store contract for informational articles.
// SlugExists takes the ID of a topic to leave out of the check, so a rename
// never collides with the topic's own row; pass 0 when creating.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*models.InformationTopic, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.InformationTopic, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Create(ctx context.Context, topic *models.InformationTopic) (*models.InformationTopic, error)
	Update(ctx context.Context, topic *models.InformationTopic) error
	Delete(ctx context.Context, id int64) error
}
