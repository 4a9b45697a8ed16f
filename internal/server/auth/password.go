package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the original deployment used; existing hashes
// keep verifying if this ever changes, since the cost is embedded per hash.
const bcryptCost = 10

// HashPassword derives a salted one-way hash for storage.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
