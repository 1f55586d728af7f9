// Package secret resolves secret-bearing configuration values.
//
// A value goes through strict environment expansion (ExpandEnvStrict) and
// then secret reference resolution (Resolver). References have the form
// "secretref:<provider>:<ref>" and may make up the whole value or appear
// inline:
//
//	secretref:env:JUGS_SIGNING_KEY
//	secretref:file:/run/secrets/jwt_secret
//	ops=secretref:file:/run/secrets/ops_key
//
// The env and file providers are registered in DefaultRegistry.
package secret
