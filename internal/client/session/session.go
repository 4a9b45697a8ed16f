// Package session caches the signed-in user on the client side so callers
// can render "who am I" state without a server round trip per read.
package session

import (
	"context"
	"sync"

	"github.com/dmorenoweb/portal/internal/client/api"
)

// Session holds the cached principal. It starts in the loading state and
// settles after Initialize; all mutating calls report success as a plain
// bool and leave the cache untouched on failure. Safe for concurrent use.
type Session struct {
	client *api.Client

	mu        sync.RWMutex
	principal *api.User
	loading   bool

	initOnce sync.Once
}

// New returns a Session in the loading state.
func New(client *api.Client) *Session {
	return &Session{client: client, loading: true}
}

// Initialize fetches the current principal once. Repeated calls are no-ops.
// Whatever happens, the session leaves the loading state, so UIs never hang
// on a dead server.
func (s *Session) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		user, err := s.client.Session(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err == nil {
			s.principal = user
		}
		s.loading = false
	})
}

// Current returns the cached principal (nil when anonymous) and whether the
// initial fetch is still in flight.
func (s *Session) Current() (*api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal, s.loading
}

// Login signs in and caches the principal. Returns false on any failure,
// leaving the previous state in place.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	user, err := s.client.Login(ctx, email, password)
	if err != nil || user == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = user
	s.loading = false
	return true
}

// Register creates an account and caches the new principal. Returns false
// on any failure.
func (s *Session) Register(ctx context.Context, name, email, password string) bool {
	user, err := s.client.Register(ctx, name, email, password)
	if err != nil || user == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = user
	s.loading = false
	return true
}

// Logout clears the server cookie and drops the cached principal. The cache
// is cleared only when the server call succeeds, mirroring Login.
func (s *Session) Logout(ctx context.Context) bool {
	if err := s.client.Logout(ctx); err != nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
	return true
}
