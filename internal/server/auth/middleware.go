package auth

import (
	"encoding/json"
	"net/http"

	"github.com/dmorenoweb/portal/internal/logging"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{Message: message})
}

// Gate wraps the resolver into authorization middleware. Each wrapper calls
// Resolve exactly once and never invokes the protected handler on rejection.
type Gate struct {
	resolver *Resolver
	logger   logging.Logger
}

func NewGate(resolver *Resolver, logger logging.Logger) *Gate {
	return &Gate{
		resolver: resolver,
		logger:   logger.With("module", "gate"),
	}
}

// RequireAuth rejects anonymous requests with 401. On success the principal
// is bound into the request context before the handler runs.
func (g *Gate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.resolver.Resolve(r)
		if err != nil {
			g.logger.Error(r.Context(), "principal lookup failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
	})
}

// RequireAdmin rejects anonymous requests and authenticated non-admins with
// 403. Authentication and authorization failures are deliberately collapsed
// here: probing an admin endpoint reveals nothing about whether credentials
// were valid.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.resolver.Resolve(r)
		if err != nil {
			g.logger.Error(r.Context(), "principal lookup failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil || !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
	})
}

// Optional never rejects; it binds the principal when present and nil
// otherwise, letting handlers personalize public pages. Store failures also
// degrade to anonymous here, since the wrapped content is public anyway.
func (g *Gate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.resolver.Resolve(r)
		if err != nil {
			g.logger.Error(r.Context(), "principal lookup failed", "error", err.Error())
			user = nil
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), user)))
	})
}
