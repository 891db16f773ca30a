package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminCredentials is the single configured admin identity.
// When PasswordHash is set it is a bcrypt hash and Password is ignored.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// Verify checks email and password against the configured admin.
func (a AdminCredentials) Verify(email, password string) error {
	if a.Email == "" || !strings.EqualFold(strings.TrimSpace(email), a.Email) {
		return ErrInvalidCredentials
	}

	if a.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
		if err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrInvalidCredentials
			}
			return err
		}
		return nil
	}

	if a.Password == "" || password != a.Password {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
