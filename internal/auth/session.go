package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Cookie attributes of the session.
const (
	CookieName = "afm-session"
	MaxAge     = 24 * time.Hour
)

// Session is the decoded content of the session cookie. It is informational:
// nothing in it is signed.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	TS    int64  `json:"ts"`
}

// IssuedAt converts TS (Unix milliseconds) to a time.
func (s Session) IssuedAt() time.Time {
	return time.UnixMilli(s.TS)
}

// EncodeToken serializes u and the issue time as base64 JSON.
func EncodeToken(u User, now time.Time) (string, error) {
	data, err := json.Marshal(Session{Email: u.Email, Name: u.Name, Role: u.Role, TS: now.UnixMilli()})
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

var tokenEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeToken accepts any value that is base64 of syntactically valid JSON.
// Fields that do not fit Session are left zero.
func DecodeToken(value string) (Session, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Session{}, ErrMalformedSession
	}

	for _, enc := range tokenEncodings {
		data, err := enc.DecodeString(value)
		if err != nil {
			continue
		}
		if !json.Valid(data) {
			return Session{}, fmt.Errorf("%w: not JSON", ErrMalformedSession)
		}
		var s Session
		_ = json.Unmarshal(data, &s)
		return s, nil
	}
	return Session{}, fmt.Errorf("%w: not base64", ErrMalformedSession)
}

// SessionCookie builds the cookie set on login.
func SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedCookie expires the session cookie.
func ClearedCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
