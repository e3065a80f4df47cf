// Package auth checks the single configured credential pair and encodes the
// session cookie the dashboard is gated on.
package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults used when no credentials are configured.
const (
	DefaultEmail    = "admin@admin.com"
	DefaultPassword = "admin123"
)

// Fixed identity of the single dashboard user.
const (
	UserName = "Admin"
	UserRole = "Admin"
)

var validate = validator.New()

// User is the authenticated identity returned by a successful login.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate reports ErrValidation when a field is missing or empty.
func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Credentials is the statically configured login pair.
type Credentials struct {
	Email    string
	Password string
}

// DefaultCredentials returns the built-in pair.
func DefaultCredentials() Credentials {
	return Credentials{Email: DefaultEmail, Password: DefaultPassword}
}

// CredentialsFromEnv reads AUTH_EMAIL and AUTH_PASSWORD, falling back to the
// defaults for unset or empty variables.
func CredentialsFromEnv() Credentials {
	c := DefaultCredentials()
	if v := os.Getenv("AUTH_EMAIL"); v != "" {
		c.Email = v
	}
	if v := os.Getenv("AUTH_PASSWORD"); v != "" {
		c.Password = v
	}
	return c
}

// Check compares email case-insensitively and password exactly. The returned
// user carries the configured email, not the submitted one.
func (c Credentials) Check(email, password string) (User, error) {
	if !strings.EqualFold(email, c.Email) || password != c.Password {
		return User{}, ErrAuthentication
	}
	return User{Email: c.Email, Name: UserName, Role: UserRole}, nil
}

// Login validates req and checks it against the configured pair.
func (c Credentials) Login(req LoginRequest) (User, error) {
	if err := req.Validate(); err != nil {
		return User{}, err
	}
	return c.Check(req.Email, req.Password)
}
