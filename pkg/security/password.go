package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost factor used by the onboarding flow; existing
// hashes in the database were produced with it.
const BcryptCost = 10

// HashPassword returns a bcrypt hash for the provided password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword returns true when the password matches the encoded hash.
func VerifyPassword(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
