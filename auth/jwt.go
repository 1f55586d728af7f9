package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig configures the JWT authenticator.
type JWTConfig struct {
	// Secret is the HMAC signing key. Required.
	Secret []byte

	// Issuer is the expected iss claim (optional).
	Issuer string

	// Audience is the expected aud claim (optional).
	Audience string

	// Leeway tolerates clock skew when checking exp, nbf and iat.
	Leeway time.Duration
}

// JWTAuthenticator validates HMAC-signed bearer tokens.
type JWTAuthenticator struct {
	config JWTConfig
	parser *jwt.Parser
}

const bearerPrefix = "Bearer "

// NewJWTAuthenticator creates a new JWT authenticator.
func NewJWTAuthenticator(config JWTConfig) (*JWTAuthenticator, error) {
	if len(config.Secret) == 0 {
		return nil, ErrNoSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(config.Leeway),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	if config.Audience != "" {
		opts = append(opts, jwt.WithAudience(config.Audience))
	}

	return &JWTAuthenticator{config: config, parser: jwt.NewParser(opts...)}, nil
}

// Name returns "jwt".
func (a *JWTAuthenticator) Name() string {
	return string(AuthMethodJWT)
}

// Supports returns true if the request carries a bearer token.
func (a *JWTAuthenticator) Supports(_ context.Context, req *Request) bool {
	return strings.HasPrefix(req.Header("Authorization"), bearerPrefix)
}

// Authenticate validates the bearer token.
func (a *JWTAuthenticator) Authenticate(_ context.Context, req *Request) (*Result, error) {
	header := req.Header("Authorization")
	tokenString, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(tokenString) == "" {
		return Failure(ErrMissingCredentials, a.Name()), nil
	}

	claims := &jwt.RegisteredClaims{}
	_, err := a.parser.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(*jwt.Token) (any, error) {
		return a.config.Secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Failure(ErrTokenExpired, a.Name()), nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Failure(ErrTokenMalformed, a.Name()), nil
	default:
		return Failure(ErrInvalidCredentials, a.Name()), nil
	}

	if claims.Subject == "" {
		return Failure(ErrInvalidCredentials, a.Name()), nil
	}

	id := &Identity{
		Principal:    claims.Subject,
		Method:       AuthMethodJWT,
		CredentialID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return Success(id), nil
}

// TokenSpec describes a token to sign.
type TokenSpec struct {
	Subject  string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// SignToken issues an HS256 token for spec with a random token ID. It is
// the counterpart of JWTAuthenticator for operators and tests.
func SignToken(secret []byte, spec TokenSpec, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}
	if spec.TTL <= 0 {
		spec.TTL = time.Hour
	}

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   spec.Subject,
		Issuer:    spec.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(spec.TTL)),
	}
	if spec.Audience != "" {
		claims.Audience = jwt.ClaimStrings{spec.Audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

var _ Authenticator = (*JWTAuthenticator)(nil)
