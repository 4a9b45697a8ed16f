package httpapi

import (
	"net/http"

	"github.com/dmorenoweb/portal/internal/server/auth"
)

// handleAdminStats returns the dashboard counters plus the requesting admin,
// so the dashboard can render without a second session round trip.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repos.Stats(s.db).Collect(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "stats collect failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": stats,
		"admin": auth.PrincipalFromContext(r.Context()),
	})
}
