package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/gallery"
)

const (
	featuredSampleSize = 6
	relatedSampleSize  = 4
)

type galleryRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	Source      *string `json:"source"`
	CategoryID  *int64  `json:"category_id"`
}

func (s *Server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	items, total, err := s.repos.Gallery(s.db).List(r.Context(), gallery.ListFilter{
		CategoryID: categoryFilter(r),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		s.logger.Error(r.Context(), "gallery list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.GalleryImage{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"images":     items,
		"page":       p.Page,
		"totalPages": totalPages(total, p.Limit),
		"totalItems": total,
	})
}

func (s *Server) handleGalleryFeatured(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Gallery(s.db).Featured(r.Context(), featuredSampleSize)
	if err != nil {
		s.logger.Error(r.Context(), "featured fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, "No images found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"images": items})
}

func (s *Server) handleGalleryRelated(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	repo := s.repos.Gallery(s.db)

	image, err := repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		s.logger.Error(r.Context(), "image fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	items, err := repo.Related(r.Context(), id, image.CategoryID, relatedSampleSize)
	if err != nil {
		s.logger.Error(r.Context(), "related fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.GalleryImage{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"images": items})
}

func (s *Server) handleGalleryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	image, err := s.repos.Gallery(s.db).GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		s.logger.Error(r.Context(), "image fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, image)
}

// handleGalleryCreate registers a new image. When no external URL is given,
// the response carries a presigned PUT URL and the stored URL is the object
// key, so the client can upload the bytes straight to object storage.
func (s *Server) handleGalleryCreate(w http.ResponseWriter, r *http.Request) {
	var req galleryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	var uploadURL string
	if req.URL == "" {
		key, presigned, err := s.uploads.PresignedPutURL(r.Context())
		if err != nil {
			s.logger.Error(r.Context(), "presign failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		req.URL = key
		uploadURL = presigned
	}

	user := auth.PrincipalFromContext(r.Context())
	image := &models.GalleryImage{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Source:      req.Source,
		UserID:      user.ID,
		CategoryID:  req.CategoryID,
	}

	created, err := s.repos.Gallery(s.db).Create(r.Context(), image)
	if err != nil {
		s.logger.Error(r.Context(), "image create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := map[string]any{"image": created}
	if uploadURL != "" {
		resp["uploadUrl"] = uploadURL
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGalleryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req galleryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, "Title and url are required")
		return
	}

	image := &models.GalleryImage{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Source:      req.Source,
		CategoryID:  req.CategoryID,
	}

	if err := s.repos.Gallery(s.db).Update(r.Context(), image); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		s.logger.Error(r.Context(), "image update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Image updated"})
}

func (s *Server) handleGalleryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := s.repos.Gallery(s.db).Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Image not found")
			return
		}
		s.logger.Error(r.Context(), "image delete failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Image deleted"})
}
