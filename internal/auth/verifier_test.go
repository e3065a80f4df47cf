package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Lenient(t *testing.T) {
	v := NewVerifier(DefaultCredentials(), false)

	token, err := EncodeToken(User{Email: "someone@else.com"}, time.Unix(0, 0))
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.NoError(t, err, "any decodable session is accepted")

	_, err = v.Verify("not-base64-json")
	assert.ErrorIs(t, err, ErrMalformedSession)
}

func TestVerifier_Strict(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	v := NewVerifier(DefaultCredentials(), true)
	v.Now = func() time.Time { return now }

	admin := User{Email: "ADMIN@admin.com", Name: "Admin", Role: "Admin"}
	tests := []struct {
		name    string
		user    User
		issued  time.Time
		wantErr bool
	}{
		{"fresh", admin, now.Add(-time.Hour), false},
		{"just inside max age", admin, now.Add(-MaxAge), false},
		{"expired", admin, now.Add(-MaxAge - time.Second), true},
		{"issued in the future", admin, now.Add(time.Minute), true},
		{"other user", User{Email: "x@x.com"}, now, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := EncodeToken(tt.user, tt.issued)
			require.NoError(t, err)

			s, err := v.Verify(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSession)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.user.Email, s.Email)
		})
	}
}
