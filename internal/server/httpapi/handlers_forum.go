package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/forum"
)

type topicRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID int64  `json:"category_id"`
}

type replyRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleForumList(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)
	repo := s.repos.Forum(s.db)

	items, total, err := repo.List(r.Context(), forum.ListFilter{
		CategoryID: categoryFilter(r),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		s.logger.Error(r.Context(), "forum list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.ForumTopic{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"topics":      items,
		"page":        p.Page,
		"totalPages":  totalPages(total, p.Limit),
		"totalItems":  total,
		"currentUser": auth.PrincipalFromContext(r.Context()),
	})
}

// handleForumGet returns one topic and bumps its view counter. The bump is
// best-effort; a failed counter update does not fail the read.
func (s *Server) handleForumGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	repo := s.repos.Forum(s.db)

	if err := repo.IncrementViewCount(r.Context(), id); err != nil {
		s.logger.Error(r.Context(), "view count bump failed", "error", err.Error())
	}

	topic, err := repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "topic fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleForumCreate(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" || req.CategoryID < 1 {
		writeError(w, http.StatusBadRequest, "Title, content and category are required")
		return
	}

	user := auth.PrincipalFromContext(r.Context())
	topic := &models.ForumTopic{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		AuthorID:   user.ID,
	}

	created, err := s.repos.Forum(s.db).Create(r.Context(), topic)
	if err != nil {
		s.logger.Error(r.Context(), "topic create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// requireTopicOwnership loads the topic's author and rejects the request
// unless the principal wrote it or is an admin. A false return means the
// response has already been written.
func (s *Server) requireTopicOwnership(w http.ResponseWriter, r *http.Request, topicID int64) bool {
	authorID, err := s.repos.Forum(s.db).GetAuthorID(r.Context(), topicID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return false
		}
		s.logger.Error(r.Context(), "topic lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return false
	}

	user := auth.PrincipalFromContext(r.Context())
	if user.ID != authorID && !user.IsAdmin() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return false
	}
	return true
}

func (s *Server) handleForumUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req topicRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" || req.CategoryID < 1 {
		writeError(w, http.StatusBadRequest, "Title, content and category are required")
		return
	}
	if !s.requireTopicOwnership(w, r, id) {
		return
	}

	topic := &models.ForumTopic{ID: id, Title: req.Title, Content: req.Content, CategoryID: req.CategoryID}
	if err := s.repos.Forum(s.db).Update(r.Context(), topic); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "topic update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic updated"})
}

func (s *Server) handleForumDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if !s.requireTopicOwnership(w, r, id) {
		return
	}

	if err := s.repos.Forum(s.db).Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "topic delete failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic deleted"})
}

func (s *Server) handleReplyList(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	replies, err := s.repos.Forum(s.db).ListReplies(r.Context(), id)
	if err != nil {
		s.logger.Error(r.Context(), "reply list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if replies == nil {
		replies = []*models.ForumReply{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"replies": replies})
}

// handleReplyCreate inserts a reply and bumps the topic's reply counter and
// last_activity in one transaction, so the counters never drift from the
// actual reply rows.
func (s *Server) handleReplyCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req replyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	if _, err := s.repos.Forum(s.db).GetAuthorID(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Topic not found")
			return
		}
		s.logger.Error(r.Context(), "topic lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := auth.PrincipalFromContext(r.Context())
	reply := &models.ForumReply{TopicID: id, Content: req.Content, AuthorID: user.ID}

	err := dbx.WithTx(r.Context(), s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repos.Forum(tx)
		if _, err := repoTx.CreateReply(ctx, reply); err != nil {
			return err
		}
		return repoTx.IncrementReplyCount(ctx, id)
	})
	if err != nil {
		s.logger.Error(r.Context(), "reply create failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleReplyDelete(w http.ResponseWriter, r *http.Request) {
	replyID, ok := idParam(w, r, "replyId")
	if !ok {
		return
	}

	authorID, topicID, err := s.repos.Forum(s.db).GetReplyAuthor(r.Context(), replyID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Reply not found")
			return
		}
		s.logger.Error(r.Context(), "reply lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := auth.PrincipalFromContext(r.Context())
	if user.ID != authorID && !user.IsAdmin() {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	err = dbx.WithTx(r.Context(), s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repos.Forum(tx)
		if err := repoTx.DeleteReply(ctx, replyID); err != nil {
			return err
		}
		return repoTx.DecrementReplyCount(ctx, topicID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Reply not found")
			return
		}
		s.logger.Error(r.Context(), "reply delete failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Reply deleted"})
}
