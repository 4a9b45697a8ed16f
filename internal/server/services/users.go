// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and mints the session
// tokens carried in the auth cookie.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/config"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create accounts and mint a first session token
// - Login: verify credentials and mint a session token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.AuthTokenTTL,
	}
}

// Register creates a new account with the default role and returns it with a
// signed session token. A taken email yields ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	user, err := repo.Create(ctx, name, email, hash, models.RoleUser)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := auth.IssueToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the email/password pair and, on success, returns the account
// with a signed session token. Unknown emails and wrong passwords both yield
// ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.IssueToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}
