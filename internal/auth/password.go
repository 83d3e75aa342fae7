package auth

import (
	"crypto/sha256"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Secrets are SHA-256 digested before bcrypt so logins longer than bcrypt's
// 72-byte input limit still hash and verify.

func HashPassword(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))

	hash, err := bcrypt.GenerateFromPassword(sum[:], bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// A malformed stored hash yields false, never an error; the comparison is
// delegated entirely to bcrypt, which is constant-effort.
func VerifyPassword(password string, storedHash string) bool {
	sum := sha256.Sum256([]byte(password))
	return bcrypt.CompareHashAndPassword([]byte(storedHash), sum[:]) == nil
}
