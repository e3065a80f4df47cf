package auth

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	users := []User{
		{Email: "admin@admin.com", Name: "Admin", Role: "Admin"},
		{Email: "ünïcode@example.com", Name: "Zoë", Role: "Viewer"},
		{},
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, u := range users {
		token, err := EncodeToken(u, now)
		require.NoError(t, err)

		s, err := DecodeToken(token)
		require.NoError(t, err)
		assert.Equal(t, u, User{Email: s.Email, Name: s.Name, Role: s.Role})
		assert.Equal(t, now.UnixMilli(), s.TS)
		assert.True(t, now.Equal(s.IssuedAt()))
	}
}

func TestDecodeToken(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"object", b64(`{"email":"a@b.c"}`), false},
		{"unpadded", base64.RawStdEncoding.EncodeToString([]byte(`{"email":"a@b.c"}`)), false},
		{"json array is still json", b64(`[1,2,3]`), false},
		{"json number", b64(`42`), false},
		{"not base64", "not-base64-json", true},
		{"base64 of text", b64("hello"), true},
		{"empty", "", true},
		{"whitespace", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeToken(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSession)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("tok", false)

	assert.Equal(t, "afm-session", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 86400, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	assert.True(t, SessionCookie("tok", true).Secure)
}

func TestClearedCookie(t *testing.T) {
	c := ClearedCookie(false)

	assert.Equal(t, "afm-session", c.Name)
	assert.Empty(t, c.Value)
	assert.Contains(t, c.String(), "Max-Age=0")
}
