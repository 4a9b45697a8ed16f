package auth

import (
	"errors"
	"net/http"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/logging"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/users"
)

// Resolver turns an inbound request into a principal. It is stateless and
// safe for concurrent use; each call performs at most one store lookup.
type Resolver struct {
	users   users.Repository
	cookies *Cookies
	secret  []byte
	logger  logging.Logger
}

func NewResolver(repo users.Repository, cookies *Cookies, secret []byte, logger logging.Logger) *Resolver {
	return &Resolver{
		users:   repo,
		cookies: cookies,
		secret:  secret,
		logger:  logger.With("module", "resolver"),
	}
}

// Resolve extracts the session token from the request, verifies it, and
// loads the authoritative user record. It returns (nil, nil) for every shade
// of "no principal": missing cookie, malformed or expired token, or a user
// row that no longer exists. Verification detail is logged at debug level
// and never surfaced to the caller. A non-nil error means the record store
// itself failed; callers map that to a generic 500.
//
// The returned user carries the role read from storage, not the role claim
// embedded in the token, so role changes take effect on the next request
// without re-login.
func (rs *Resolver) Resolve(r *http.Request) (*models.User, error) {
	token, ok := rs.cookies.Read(r)
	if !ok {
		return nil, nil
	}

	claims, err := ParseToken(token, rs.secret)
	if err != nil {
		rs.logger.Debug(r.Context(), "rejected session token", "reason", err.Error())
		return nil, nil
	}

	user, err := rs.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
