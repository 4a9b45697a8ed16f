package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/information"
)

type informationRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Content     string  `json:"content"`
	ImageURL    *string `json:"image_url"`
	ParentID    *int64  `json:"parent_id"`
	CategoryID  *int64  `json:"category_id"`
}

func (s *Server) handleInformationList(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	items, total, err := s.repos.Information(s.db).List(r.Context(), information.ListFilter{
		CategoryID: categoryFilter(r),
		Search:     r.URL.Query().Get("search"),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		s.logger.Error(r.Context(), "information list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.InformationTopic{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topics":     items,
		"page":       p.Page,
		"totalPages": totalPages(total, p.Limit),
		"totalItems": total,
	})
}

func (s *Server) handleInformationGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	topic, err := s.repos.Information(s.db).GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "information fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleInformationCreate(w http.ResponseWriter, r *http.Request) {
	var req informationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Slug == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title, slug and content are required")
		return
	}
	repo := s.repos.Information(s.db)

	taken, err := repo.SlugExists(r.Context(), req.Slug, 0)
	if err != nil {
		s.logger.Error(r.Context(), "slug check failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "Topic with this slug already exists")
		return
	}

	user := auth.PrincipalFromContext(r.Context())
	topic := &models.InformationTopic{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
		AuthorID:    user.ID,
		CategoryID:  req.CategoryID,
	}

	created, err := repo.Create(r.Context(), topic)
	if err != nil {
		s.logger.Error(r.Context(), "information create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleInformationUpdate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var req informationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	repo := s.repos.Information(s.db)

	existing, err := repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "information fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// An omitted slug keeps the current one; a new slug must not belong to
	// any other topic.
	newSlug := req.Slug
	if newSlug == "" {
		newSlug = existing.Slug
	}
	taken, err := repo.SlugExists(r.Context(), newSlug, existing.ID)
	if err != nil {
		s.logger.Error(r.Context(), "slug check failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if taken {
		writeError(w, http.StatusConflict, "Topic with this slug already exists")
		return
	}

	topic := &models.InformationTopic{
		ID:          existing.ID,
		Title:       req.Title,
		Slug:        newSlug,
		Description: req.Description,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
		CategoryID:  req.CategoryID,
	}

	if err := repo.Update(r.Context(), topic); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "information update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic updated"})
}

func (s *Server) handleInformationDelete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	repo := s.repos.Information(s.db)

	existing, err := repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "information fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := repo.Delete(r.Context(), existing.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "information delete failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic deleted"})
}
