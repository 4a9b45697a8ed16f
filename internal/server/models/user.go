// Package models defines the persistent entities served by the portal.
package models

import "time"

// Roles assignable to a user. Authorization decisions always consult the
// stored role, never a cached copy.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an authenticated principal. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
