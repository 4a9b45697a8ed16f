package auth

import (
	"net/http"
	"time"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// Cookies writes and reads the session cookie. A single instance is shared
// by all handlers; the SameSite policy is passed per call because the
// deployed configuration differs between endpoints.
type Cookies struct {
	// Secure marks cookies as HTTPS-only. Enabled in production.
	Secure bool
	// MaxAge mirrors the session token TTL.
	MaxAge time.Duration
}

// Attach sets the session cookie on the response. The cookie is HttpOnly and
// scoped to the whole site; its lifetime matches the token's.
func (c *Cookies) Attach(w http.ResponseWriter, token string, sameSite http.SameSite) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
		MaxAge:   int(c.MaxAge.Seconds()),
	})
}

// Clear overwrites the session cookie with an empty value and an expiry in
// the past so the browser drops it immediately.
func (c *Cookies) Clear(w http.ResponseWriter, sameSite http.SameSite) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: sameSite,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// Read extracts the raw token from the request's cookies. No validation
// happens here; that is the resolver's job.
func (c *Cookies) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// ParseSameSite maps a configuration string to the corresponding
// http.SameSite mode. Unknown values fall back to Strict, the safer default.
func ParseSameSite(s string) http.SameSite {
	switch s {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
