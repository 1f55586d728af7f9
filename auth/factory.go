package auth

import (
	"errors"
	"fmt"
)

// Mode selects which credentials the service accepts.
type Mode string

const (
	ModeNone   Mode = "none"
	ModeAPIKey Mode = "apikey"
	ModeJWT    Mode = "jwt"
	ModeAny    Mode = "any" // API key or JWT
)

// ErrUnknownMode indicates an unsupported Mode.
var ErrUnknownMode = errors.New("auth: unknown mode")

// Settings holds resolved credentials for New.
type Settings struct {
	Mode    Mode
	APIKeys string // see ParseAPIKeys
	JWT     JWTConfig
}

// New builds the authenticator for s.Mode. ModeNone returns (nil, nil),
// which Middleware treats as anonymous access.
func New(s Settings) (Authenticator, error) {
	switch s.Mode {
	case ModeNone, "":
		return nil, nil
	case ModeAPIKey:
		keys, err := newAPIKey(s.APIKeys)
		if err != nil {
			return nil, err
		}
		return keys, nil
	case ModeJWT:
		jwtAuth, err := NewJWTAuthenticator(s.JWT)
		if err != nil {
			return nil, err
		}
		return jwtAuth, nil
	case ModeAny:
		keys, err := newAPIKey(s.APIKeys)
		if err != nil {
			return nil, err
		}
		jwtAuth, err := NewJWTAuthenticator(s.JWT)
		if err != nil {
			return nil, err
		}
		return NewCompositeAuthenticator(keys, jwtAuth), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, s.Mode)
	}
}

func newAPIKey(list string) (*APIKeyAuthenticator, error) {
	store, err := ParseAPIKeys(list)
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("%w: no api keys configured", ErrMissingCredentials)
	}
	return NewAPIKeyAuthenticator(APIKeyConfig{}, store), nil
}
