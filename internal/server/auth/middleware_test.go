package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/logging"
	"github.com/dmorenoweb/portal/internal/server/models"
)

type fakeUsersRepo struct {
	users map[int64]*models.User
	err   error
	calls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

var testSecret = []byte("test-secret")

func newGateWithRepo(t *testing.T, repo *fakeUsersRepo) *Gate {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	cookies := &Cookies{MaxAge: time.Hour}
	resolver := NewResolver(repo, cookies, testSecret, logger)
	return NewGate(resolver, logger)
}

func requestWithToken(t *testing.T, user *models.User) *http.Request {
	t.Helper()
	tok, err := IssueToken(user, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	return r
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Message
}

func TestRequireAuth_NoCookie(t *testing.T) {
	repo := &fakeUsersRepo{}
	gate := newGateWithRepo(t, repo)

	invoked := false
	h := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if invoked {
		t.Fatal("protected handler must not run on rejection")
	}
	if got := decodeMessage(t, rec); got != "Unauthorized" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	repo := &fakeUsersRepo{}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if repo.calls != 0 {
		t.Fatalf("store must not be hit for an invalid token, got %d calls", repo.calls)
	}
}

func TestRequireAuth_BindsFreshPrincipal(t *testing.T) {
	stored := &models.User{ID: 42, Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	repo := &fakeUsersRepo{users: map[int64]*models.User{42: stored}}
	gate := newGateWithRepo(t, repo)

	var got *models.User
	h := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, stored))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.ID != 42 {
		t.Fatalf("unexpected principal: %+v", got)
	}
	if repo.calls != 1 {
		t.Fatalf("expected exactly one store lookup, got %d", repo.calls)
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	repo := &fakeUsersRepo{users: map[int64]*models.User{}}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, &models.User{ID: 42, Role: models.RoleUser}))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", rec.Code)
	}
}

func TestRequireAuth_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{err: errors.New("db down")}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, &models.User{ID: 42, Role: models.RoleUser}))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "Internal server error" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRequireAdmin_Anonymous(t *testing.T) {
	repo := &fakeUsersRepo{}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for anonymous, got %d", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "Forbidden" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	stored := &models.User{ID: 42, Role: models.RoleUser}
	repo := &fakeUsersRepo{users: map[int64]*models.User{42: stored}}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, stored))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}
}

func TestRequireAdmin_RoleComesFromStore(t *testing.T) {
	// The token was minted before the promotion; only the stored row says admin.
	stored := &models.User{ID: 42, Role: models.RoleAdmin}
	repo := &fakeUsersRepo{users: map[int64]*models.User{42: stored}}
	gate := newGateWithRepo(t, repo)

	var got *models.User
	h := gate.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, &models.User{ID: 42, Role: models.RoleUser}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected promoted user to pass, got %d", rec.Code)
	}
	if got == nil || !got.IsAdmin() {
		t.Fatalf("expected admin principal from store, got %+v", got)
	}
	if repo.calls != 1 {
		t.Fatalf("expected exactly one store lookup, got %d", repo.calls)
	}
}

func TestRequireAdmin_DemotionTakesEffect(t *testing.T) {
	// Token still claims admin; the stored row has been demoted.
	stored := &models.User{ID: 42, Role: models.RoleUser}
	repo := &fakeUsersRepo{users: map[int64]*models.User{42: stored}}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, &models.User{ID: 42, Role: models.RoleAdmin}))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for demoted user, got %d", rec.Code)
	}
}

func TestOptional_AnonymousPasses(t *testing.T) {
	repo := &fakeUsersRepo{}
	gate := newGateWithRepo(t, repo)

	invoked := false
	h := gate.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		if PrincipalFromContext(r.Context()) != nil {
			t.Fatal("expected nil principal for anonymous request")
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !invoked || rec.Code != http.StatusOK {
		t.Fatalf("expected handler to run with 200, invoked=%v code=%d", invoked, rec.Code)
	}
}

func TestOptional_StoreErrorDegradesToAnonymous(t *testing.T) {
	repo := &fakeUsersRepo{err: errors.New("db down")}
	gate := newGateWithRepo(t, repo)

	invoked := false
	h := gate.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		if PrincipalFromContext(r.Context()) != nil {
			t.Fatal("expected nil principal on store failure")
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, &models.User{ID: 42, Role: models.RoleUser}))

	if !invoked || rec.Code != http.StatusOK {
		t.Fatalf("expected handler to run with 200, invoked=%v code=%d", invoked, rec.Code)
	}
}

func TestOptional_BindsPrincipalWhenPresent(t *testing.T) {
	stored := &models.User{ID: 42, Name: "Alice", Role: models.RoleUser}
	repo := &fakeUsersRepo{users: map[int64]*models.User{42: stored}}
	gate := newGateWithRepo(t, repo)

	var got *models.User
	h := gate.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = PrincipalFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithToken(t, stored))

	if got == nil || got.ID != 42 {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestResolver_ExpiredToken(t *testing.T) {
	stored := &models.User{ID: 42, Role: models.RoleUser}
	repo := &fakeUsersRepo{users: map[int64]*models.User{42: stored}}
	gate := newGateWithRepo(t, repo)

	h := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	tok, err := IssueToken(stored, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: tok})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}
