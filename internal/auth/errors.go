package auth

import "errors"

var (
	// ErrValidation is returned when a login request is missing a field.
	ErrValidation = errors.New("email and password are required")
	// ErrAuthentication is returned when credentials do not match.
	ErrAuthentication = errors.New("invalid email or password")
	// ErrMalformedSession is returned when a session cookie cannot be decoded.
	ErrMalformedSession = errors.New("malformed session")
)
