package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single admin account the gate accepts.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials prefers passwordHash (bcrypt) and hashes password otherwise.
func NewCredentials(username, password, passwordHash string) (Credentials, error) {
	if username == "" {
		return Credentials{}, fmt.Errorf("admin username required")
	}
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return Credentials{}, fmt.Errorf("admin password hash: %w", err)
		}
		return Credentials{username: username, passwordHash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return Credentials{}, fmt.Errorf("admin password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash admin password: %w", err)
	}
	return Credentials{username: username, passwordHash: hash}, nil
}

func (c Credentials) Username() string { return c.username }

// Check reports whether the pair matches. Both parts are always compared.
func (c Credentials) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
