package stats

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// Repository is the read-only contract for the admin dashboard aggregates.
type Repository interface {
	Collect(ctx context.Context) (*models.Stats, error)
}
