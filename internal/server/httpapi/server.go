// Package httpapi exposes the portal over HTTP. It owns the router, the
// session cookie handling, and the JSON request/response conventions shared
// by all handlers.
package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmorenoweb/portal/internal/logging"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/config"
	"github.com/dmorenoweb/portal/internal/server/repositories/repomanager"
	"github.com/dmorenoweb/portal/internal/server/services"
)

type Server struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	repos   repomanager.RepositoryManager
	users   *services.UserService
	uploads *services.UploadService
	cookies *auth.Cookies
	gate    *auth.Gate
}

// NewServer wires the HTTP surface: cookie writer, principal resolver, and
// the authorization gate around the given services and repositories.
func NewServer(cfg *config.Config, l logging.Logger, db *sql.DB, repos repomanager.RepositoryManager,
	us *services.UserService, up *services.UploadService) *Server {

	cookies := &auth.Cookies{
		Secure: cfg.IsProduction(),
		MaxAge: cfg.AuthTokenTTL,
	}
	resolver := auth.NewResolver(repos.Users(db), cookies, []byte(cfg.SecretKey), l)

	return &Server{
		config:  cfg,
		logger:  l.With("module", "http_server"),
		db:      db,
		repos:   repos,
		users:   us,
		uploads: up,
		cookies: cookies,
		gate:    auth.NewGate(resolver, l),
	}
}

// Routes builds the chi router with the full endpoint surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/logout", s.handleLogout)
		r.With(s.gate.Optional).Get("/auth/session", s.handleSession)

		r.Get("/news", s.handleNewsList)
		r.Get("/news/{id}", s.handleNewsGet)
		r.With(s.gate.RequireAdmin).Post("/news", s.handleNewsCreate)
		r.With(s.gate.RequireAdmin).Put("/news/{id}", s.handleNewsUpdate)
		r.With(s.gate.RequireAdmin).Delete("/news/{id}", s.handleNewsDelete)

		r.With(s.gate.Optional).Get("/forum", s.handleForumList)
		r.Get("/forum/{id}", s.handleForumGet)
		r.With(s.gate.RequireAuth).Post("/forum", s.handleForumCreate)
		r.With(s.gate.RequireAuth).Put("/forum/{id}", s.handleForumUpdate)
		r.With(s.gate.RequireAuth).Delete("/forum/{id}", s.handleForumDelete)
		r.Get("/forum/{id}/replies", s.handleReplyList)
		r.With(s.gate.RequireAuth).Post("/forum/{id}/reply", s.handleReplyCreate)
		r.With(s.gate.RequireAuth).Delete("/forum/{id}/reply/{replyId}", s.handleReplyDelete)

		r.With(s.gate.Optional).Get("/gallery", s.handleGalleryList)
		r.Get("/gallery/featured", s.handleGalleryFeatured)
		r.Get("/gallery/related/{id}", s.handleGalleryRelated)
		r.Get("/gallery/{id}", s.handleGalleryGet)
		r.With(s.gate.RequireAuth).Post("/gallery", s.handleGalleryCreate)
		r.With(s.gate.RequireAdmin).Put("/gallery/{id}", s.handleGalleryUpdate)
		r.With(s.gate.RequireAdmin).Delete("/gallery/{id}", s.handleGalleryDelete)

		r.With(s.gate.Optional).Get("/information", s.handleInformationList)
		r.Get("/information/{slug}", s.handleInformationGet)
		r.With(s.gate.RequireAuth).Post("/information", s.handleInformationCreate)
		r.With(s.gate.RequireAdmin).Put("/information/{slug}", s.handleInformationUpdate)
		r.With(s.gate.RequireAdmin).Delete("/information/{slug}", s.handleInformationDelete)

		r.Get("/categories", s.handleCategoryList)
		r.With(s.gate.RequireAdmin).Post("/categories", s.handleCategoryCreate)

		r.Get("/quizzes", s.handleQuizList)
		r.Get("/quizzes/{id}", s.handleQuizGet)
		r.With(s.gate.RequireAuth).Post("/quizzes/submit", s.handleQuizSubmit)

		r.With(s.gate.RequireAdmin).Get("/admin/stats", s.handleAdminStats)
	})

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then drains in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.EndpointAddrHTTP,
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
