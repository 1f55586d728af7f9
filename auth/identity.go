package auth

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// AuthMethod names the credential a caller presented.
type AuthMethod string

const (
	AuthMethodJWT       AuthMethod = "jwt"
	AuthMethodAPIKey    AuthMethod = "api_key"
	AuthMethodAnonymous AuthMethod = "anonymous"
)

const anonymousPrincipal = "anonymous"

// Identity is the caller of a solve request.
type Identity struct {
	// Principal is the JWT subject or the API key name.
	Principal string
	Method    AuthMethod

	// CredentialID is the API key ID or the JWT ID, when present.
	CredentialID string

	// ExpiresAt is zero for credentials that never expire.
	ExpiresAt time.Time
}

// IsExpired reports whether the credential behind id has expired.
func (id *Identity) IsExpired() bool {
	return !id.ExpiresAt.IsZero() && time.Now().After(id.ExpiresAt)
}

// IsAnonymous reports whether id carries no credential.
func (id *Identity) IsAnonymous() bool {
	return id.Method == AuthMethodAnonymous || id.Principal == ""
}

// Attributes returns span attributes describing id.
func (id *Identity) Attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("enduser.id", id.Principal),
		attribute.String("jugsolver.auth.method", string(id.Method)),
	}
	if id.CredentialID != "" {
		attrs = append(attrs, attribute.String("jugsolver.auth.credential_id", id.CredentialID))
	}
	return attrs
}

// AnonymousIdentity is attached to requests when authentication is off.
func AnonymousIdentity() *Identity {
	return &Identity{Principal: anonymousPrincipal, Method: AuthMethodAnonymous}
}
