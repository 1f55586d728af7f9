package auth

import (
	"context"
	"net/http"
)

// Authenticator validates credentials and returns an identity.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: Authenticate returns (nil, error) for internal errors and
//     (Result, nil) for authentication outcomes; check Result.Authenticated.
type Authenticator interface {
	// Name returns a unique identifier for this authenticator.
	Name() string

	// Supports reports whether the request carries this authenticator's credential.
	Supports(ctx context.Context, req *Request) bool

	// Authenticate validates credentials.
	Authenticate(ctx context.Context, req *Request) (*Result, error)
}

// Request carries the credential-bearing parts of a call.
type Request struct {
	Headers http.Header
}

// Header returns the first value of a header, or "".
func (r *Request) Header(key string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	return r.Headers.Get(key)
}

// Result is the outcome of an authentication attempt.
type Result struct {
	// Authenticated is true if authentication succeeded.
	Authenticated bool

	// Identity is set when Authenticated is true.
	Identity *Identity

	// Error is set when Authenticated is false.
	Error error

	// Method names the authenticator that produced the result.
	Method string
}

// Success creates a successful result.
func Success(identity *Identity) *Result {
	return &Result{
		Authenticated: true,
		Identity:      identity,
		Method:        string(identity.Method),
	}
}

// Failure creates a failed result.
func Failure(err error, method string) *Result {
	return &Result{
		Authenticated: false,
		Error:         err,
		Method:        method,
	}
}
