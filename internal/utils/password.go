package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor for staff account credentials. OAuth-provisioned
// accounts carry no hash at all, so this only guards password logins.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives the stored bcrypt hash for a staff account password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash. Callers are expected to treat a mismatch and an unknown account
// identically.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
