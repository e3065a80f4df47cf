package auth

import (
	"fmt"
	"strings"
	"time"
)

// Verifier decides whether a cookie value is an acceptable session.
//
// In the default mode any base64 JSON is accepted. Strict mode additionally
// requires the session to name the configured email and to have been issued
// within MaxAge.
type Verifier struct {
	Strict bool
	Email  string
	Now    func() time.Time
}

// NewVerifier returns a verifier for the given credentials.
func NewVerifier(c Credentials, strict bool) *Verifier {
	return &Verifier{Strict: strict, Email: c.Email, Now: time.Now}
}

// Verify decodes value and applies the strict checks when enabled.
func (v *Verifier) Verify(value string) (Session, error) {
	s, err := DecodeToken(value)
	if err != nil {
		return Session{}, err
	}
	if v == nil || !v.Strict {
		return s, nil
	}

	if !strings.EqualFold(s.Email, v.Email) {
		return Session{}, fmt.Errorf("%w: unknown user", ErrMalformedSession)
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	age := now().Sub(s.IssuedAt())
	if s.TS <= 0 || age < 0 || age > MaxAge {
		return Session{}, fmt.Errorf("%w: expired", ErrMalformedSession)
	}
	return s, nil
}
