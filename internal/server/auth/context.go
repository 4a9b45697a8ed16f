package auth

import (
	"context"

	"github.com/dmorenoweb/portal/internal/server/models"
)

type ctxKey int

const principalKey ctxKey = 0

// WithPrincipal binds the resolved principal (possibly nil for anonymous
// requests passing through the optional gate) into the context. Only the
// gate middleware may call this.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}

// PrincipalFromContext returns the principal bound by a gate, or nil when
// the request is anonymous or passed through no gate at all.
func PrincipalFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(principalKey).(*models.User)
	return user
}
