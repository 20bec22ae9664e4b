// Package auth provides the credential and token primitives for the
// work-tracking backend: bcrypt password hashing, HMAC-signed identity
// tokens, and optional TOTP second factors.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the adaptive work factor. The salt is generated per hash and
// embedded in the output, so verification needs nothing but the hash itself.
const bcryptCost = 12

// HashPassword hashes a password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against a bcrypt hash. A malformed hash is
// reported as a mismatch, never as an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
