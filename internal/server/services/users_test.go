package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/dbx"
	"github.com/dmorenoweb/portal/internal/server/auth"
	"github.com/dmorenoweb/portal/internal/server/config"
	"github.com/dmorenoweb/portal/internal/server/models"
	"github.com/dmorenoweb/portal/internal/server/repositories/repomanager"
	usersrepo "github.com/dmorenoweb/portal/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:    "k",
		AuthTokenTTL: time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

type fakeUsersRepo struct {
	byEmail    map[string]*models.User
	byEmailErr error

	created   *models.User
	createErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &models.User{ID: 1, Name: name, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now()}
	return f.created, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeRepoMgr struct {
	repomanager.RepositoryManager
	users usersrepo.Repository
}

func (f *fakeRepoMgr) Users(db dbx.DBTX) usersrepo.Repository { return f.users }

// --- tests ---

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	user, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Fatalf("unexpected role: %q", user.Role)
	}
	if !auth.CheckPassword(repo.created.PasswordHash, "pass123") {
		t.Fatal("stored hash does not match password")
	}

	claims, err := auth.ParseToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	existing := &models.User{ID: 7, Email: "alice@example.com"}
	repo := &fakeUsersRepo{byEmail: map[string]*models.User{"alice@example.com": existing}}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_StoreError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmailErr: errors.New("db down")}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("pass123")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	existing := &models.User{ID: 7, Name: "Alice", Email: "alice@example.com", PasswordHash: hash, Role: models.RoleAdmin}
	repo := &fakeUsersRepo{byEmail: map[string]*models.User{"alice@example.com": existing}}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	user, token, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := auth.ParseToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != 7 || claims.Role != models.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "pass123")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	hash, err := auth.HashPassword("correct")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	existing := &models.User{ID: 7, Email: "alice@example.com", PasswordHash: hash}
	repo := &fakeUsersRepo{byEmail: map[string]*models.User{"alice@example.com": existing}}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_StoreError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmailErr: errors.New("db down")}
	svc := newUserService(t, db, &fakeRepoMgr{users: repo})

	_, _, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}
