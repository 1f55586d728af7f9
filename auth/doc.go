// Package auth authenticates HTTP callers of the solver API.
//
// Two credential types are supported: static API keys (stored as SHA-256
// hashes) and HMAC-signed JWT bearer tokens. A CompositeAuthenticator accepts
// whichever the caller presents, and Middleware enforces authentication on
// an http.Handler, attaching the resulting Identity to the request context.
package auth
