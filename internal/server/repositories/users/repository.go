package users

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

// Repository is the record-store contract for principals. Lookups that find
// no row return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
