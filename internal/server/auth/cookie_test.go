package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAttach_SetsSessionCookie(t *testing.T) {
	t.Parallel()

	c := &Cookies{Secure: true, MaxAge: 7 * 24 * time.Hour}
	rec := httptest.NewRecorder()

	c.Attach(rec, "tok123", http.SameSiteLaxMode)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	got := cookies[0]
	if got.Name != CookieName || got.Value != "tok123" {
		t.Fatalf("unexpected cookie: %+v", got)
	}
	if !got.HttpOnly || !got.Secure || got.Path != "/" {
		t.Fatalf("unexpected attributes: %+v", got)
	}
	if got.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected SameSite: %v", got.SameSite)
	}
	if got.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("unexpected MaxAge: %d", got.MaxAge)
	}
}

func TestClear_ExpiresCookie(t *testing.T) {
	t.Parallel()

	c := &Cookies{}
	rec := httptest.NewRecorder()

	c.Clear(rec, http.SameSiteStrictMode)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	got := cookies[0]
	if got.Value != "" || got.MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", got)
	}
	if !got.Expires.Before(time.Now()) {
		t.Fatalf("expected past expiry, got %v", got.Expires)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	c := &Cookies{}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := c.Read(r); ok {
		t.Fatal("expected no token without cookie")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok123"})
	token, ok := c.Read(r)
	if !ok || token != "tok123" {
		t.Fatalf("unexpected read: token=%q ok=%v", token, ok)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: ""})
	if _, ok := c.Read(r); ok {
		t.Fatal("expected empty cookie to read as absent")
	}
}

func TestParseSameSite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want http.SameSite
	}{
		{"lax", http.SameSiteLaxMode},
		{"none", http.SameSiteNoneMode},
		{"strict", http.SameSiteStrictMode},
		{"bogus", http.SameSiteStrictMode},
		{"", http.SameSiteStrictMode},
	}
	for _, tt := range tests {
		if got := ParseSameSite(tt.in); got != tt.want {
			t.Fatalf("ParseSameSite(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
