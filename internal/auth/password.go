package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a login does not match the
// configured admin account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrLoginDisabled is returned when no admin password hash is configured.
var ErrLoginDisabled = errors.New("admin login is disabled")

// HashPassword returns the bcrypt hash to put in the admin configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Credentials is the single admin account allowed to use the API.
type Credentials struct {
	Username     string
	PasswordHash string
}

// Verify checks a login attempt against the account.
func (c Credentials) Verify(username, password string) error {
	if c.PasswordHash == "" {
		return ErrLoginDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil || !userOK {
		return ErrInvalidCredentials
	}
	return nil
}
