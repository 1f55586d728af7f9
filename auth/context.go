package auth

import "context"

type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a new context with the given identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the identity from the context, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// PrincipalFromContext retrieves the caller principal, or "".
func PrincipalFromContext(ctx context.Context) string {
	if id := IdentityFromContext(ctx); id != nil {
		return id.Principal
	}
	return ""
}
