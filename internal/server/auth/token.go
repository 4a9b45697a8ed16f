// Package auth implements the session credential core: issuing and verifying
// signed tokens, the cookie transport, password hashing, and the
// authorization middleware that guards protected handlers.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmorenoweb/portal/internal/common"
	"github.com/dmorenoweb/portal/internal/server/models"
)

// Claims is the token payload: the minimal identity snapshot plus standard
// issued-at/expires-at timestamps. The role claim is informational only;
// authorization re-reads the role from storage on every request.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for the given user with the given
// time to live. Possession of the token is proof of identity until expiry;
// it cannot be forged or altered without the secret.
func IssueToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry of a session token and
// returns its claims. It fails with common.ErrTokenExpired when the token is
// past its expires-at, and common.ErrInvalidToken for every other defect
// (bad signature, malformed structure, wrong algorithm). It never panics.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
