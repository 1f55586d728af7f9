package secret

import "errors"

var (
	// ErrProviderNotRegistered indicates a reference named an unknown provider.
	ErrProviderNotRegistered = errors.New("secret: provider not registered")

	// ErrInvalidRegistration indicates an empty provider name or a nil factory.
	ErrInvalidRegistration = errors.New("secret: invalid provider registration")

	// ErrDuplicateProvider indicates a provider name was registered twice.
	ErrDuplicateProvider = errors.New("secret: provider already registered")

	// ErrNotFound indicates the provider has no value for the reference.
	ErrNotFound = errors.New("secret: not found")

	// ErrEmptyValue indicates a strict resolver received an empty value.
	ErrEmptyValue = errors.New("secret: empty value")

	// ErrMissingEnv indicates a referenced environment variable is unset.
	ErrMissingEnv = errors.New("secret: missing environment variables")
)
