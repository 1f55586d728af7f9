package auth

import "context"

// CompositeAuthenticator tries authenticators in order and returns the first
// success. Authenticators that do not support a request are skipped.
type CompositeAuthenticator struct {
	authenticators []Authenticator
}

// NewCompositeAuthenticator creates a composite authenticator.
func NewCompositeAuthenticator(auths ...Authenticator) *CompositeAuthenticator {
	return &CompositeAuthenticator{authenticators: auths}
}

// Name returns "composite".
func (c *CompositeAuthenticator) Name() string {
	return "composite"
}

// Supports returns true if any authenticator supports the request.
func (c *CompositeAuthenticator) Supports(ctx context.Context, req *Request) bool {
	for _, a := range c.authenticators {
		if a.Supports(ctx, req) {
			return true
		}
	}
	return false
}

// Authenticate returns the first successful result, otherwise the last
// failure. Internal errors stop the chain.
func (c *CompositeAuthenticator) Authenticate(ctx context.Context, req *Request) (*Result, error) {
	var last *Result

	for _, a := range c.authenticators {
		if !a.Supports(ctx, req) {
			continue
		}

		result, err := a.Authenticate(ctx, req)
		if err != nil {
			return nil, err
		}
		if result.Authenticated {
			return result, nil
		}
		last = result
	}

	if last != nil {
		return last, nil
	}
	return Failure(ErrMissingCredentials, c.Name()), nil
}

var _ Authenticator = (*CompositeAuthenticator)(nil)
