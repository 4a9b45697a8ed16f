package httpapi

import (
	"net/http"

	"github.com/dmorenoweb/portal/internal/server/models"
)

type categoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Categories(s.db).List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "category list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.Category{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": items})
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Slug == "" {
		writeError(w, http.StatusBadRequest, "Name and slug are required")
		return
	}
	repo := s.repos.Categories(s.db)

	taken, err := repo.SlugExists(r.Context(), req.Slug)
	if err != nil {
		s.logger.Error(r.Context(), "slug check failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "Category with this slug already exists")
		return
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug, Description: req.Description}
	created, err := repo.Create(r.Context(), category)
	if err != nil {
		s.logger.Error(r.Context(), "category create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
