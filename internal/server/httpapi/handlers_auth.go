package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.cookies.Attach(w, token, auth.ParseSameSite(s.config.LoginCookieSameSite))
	writeJSON(w, http.StatusOK, authResponse{Message: "Login successful", User: user, Token: token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "User with this email already exists")
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.cookies.Attach(w, token, auth.ParseSameSite(s.config.RegisterCookieSameSite))
	writeJSON(w, http.StatusCreated, authResponse{Message: "User registered successfully", User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.cookies.Clear(w, auth.ParseSameSite(s.config.LogoutCookieSameSite))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// handleSession reports the current principal. It always answers 200; an
// anonymous request simply gets a null user, so clients can poll it without
// error handling.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user := auth.PrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
