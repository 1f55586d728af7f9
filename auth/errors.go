package auth

import "errors"

// Sentinel errors for authentication.
var (
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrNoSecret           = errors.New("auth: signing secret is empty")
)
