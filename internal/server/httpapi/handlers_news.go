package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/news"
)

type newsRequest struct {
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	Content      string  `json:"content"`
	ImageURL     *string `json:"image_url"`
	ImageCaption *string `json:"image_caption"`
	CategoryID   *int64  `json:"category_id"`
}

// idParam parses the {id} URL segment. A false return means the 400 has
// already been written.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// categoryFilter reads the optional ?category query parameter.
func categoryFilter(r *http.Request) *int64 {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil
	}
	return &id
}

func (s *Server) handleNewsList(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)
	repo := s.repos.News(s.db)

	items, total, err := repo.List(r.Context(), news.ListFilter{
		CategoryID: categoryFilter(r),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		s.logger.Error(r.Context(), "news list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.News{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"news":       items,
		"page":       p.Page,
		"totalPages": totalPages(total, p.Limit),
		"totalItems": total,
	})
}

func (s *Server) handleNewsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	item, err := s.repos.News(s.db).GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "News article not found")
			return
		}
		s.logger.Error(r.Context(), "news fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleNewsCreate(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Summary == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title, summary and content are required")
		return
	}

	admin := auth.PrincipalFromContext(r.Context())
	item := &models.News{
		Title:        req.Title,
		Summary:      req.Summary,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		ImageCaption: req.ImageCaption,
		AuthorID:     admin.ID,
		CategoryID:   req.CategoryID,
	}

	created, err := s.repos.News(s.db).Create(r.Context(), item)
	if err != nil {
		s.logger.Error(r.Context(), "news create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleNewsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req newsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Summary == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title, summary and content are required")
		return
	}

	item := &models.News{
		ID:           id,
		Title:        req.Title,
		Summary:      req.Summary,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		ImageCaption: req.ImageCaption,
		CategoryID:   req.CategoryID,
	}

	if err := s.repos.News(s.db).Update(r.Context(), item); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "News article not found")
			return
		}
		s.logger.Error(r.Context(), "news update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "News article updated"})
}

func (s *Server) handleNewsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.repos.News(s.db).Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "News article not found")
			return
		}
		s.logger.Error(r.Context(), "news delete failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "News article deleted"})
}
