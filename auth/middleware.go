package auth

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// FailureFunc writes the response for a rejected request. err wraps one of
// the package sentinels, or is an internal error from an authenticator.
type FailureFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware requires every request to authenticate with authn. On success
// the Identity is attached to the request context and its attributes are
// added to the active span. With a nil authn every request passes as
// AnonymousIdentity.
func Middleware(authn Authenticator, onFailure FailureFunc) func(http.Handler) http.Handler {
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authn == nil {
				serveAs(next, w, r, AnonymousIdentity())
				return
			}

			req := &Request{Headers: r.Header}
			if !authn.Supports(r.Context(), req) {
				onFailure(w, r, ErrMissingCredentials)
				return
			}

			result, err := authn.Authenticate(r.Context(), req)
			if err != nil {
				onFailure(w, r, err)
				return
			}
			if !result.Authenticated {
				onFailure(w, r, result.Error)
				return
			}

			serveAs(next, w, r, result.Identity)
		})
	}
}

func serveAs(next http.Handler, w http.ResponseWriter, r *http.Request, id *Identity) {
	trace.SpanFromContext(r.Context()).SetAttributes(id.Attributes()...)
	next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
}
