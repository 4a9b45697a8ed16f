package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/models"
)

type quizSubmitRequest struct {
	QuizID  int64           `json:"quiz_id"`
	Answers json.RawMessage `json:"answers"`
	Score   int             `json:"score"`
}

func (s *Server) handleQuizList(w http.ResponseWriter, r *http.Request) {
	items, err := s.repos.Quizzes(s.db).List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "quiz list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if items == nil {
		items = []*models.Quiz{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"quizzes": items})
}

func (s *Server) handleQuizGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	quiz, err := s.repos.Quizzes(s.db).GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		s.logger.Error(r.Context(), "quiz fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

// handleQuizSubmit records the principal's answers. The submitting user is
// taken from the session, never from the request body.
func (s *Server) handleQuizSubmit(w http.ResponseWriter, r *http.Request) {
	var req quizSubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.QuizID < 1 || len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "Quiz and answers are required")
		return
	}
	repo := s.repos.Quizzes(s.db)

	if _, err := repo.GetByID(r.Context(), req.QuizID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		s.logger.Error(r.Context(), "quiz fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := auth.PrincipalFromContext(r.Context())
	result := &models.QuizResult{
		UserID:  user.ID,
		QuizID:  req.QuizID,
		Answers: req.Answers,
		Score:   req.Score,
	}

	saved, err := repo.SaveResult(r.Context(), result)
	if err != nil {
		s.logger.Error(r.Context(), "quiz submit failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, saved)
}
