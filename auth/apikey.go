package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultAPIKeyHeader carries API keys unless configured otherwise.
const DefaultAPIKeyHeader = "X-API-Key"

// APIKeyConfig configures the API key authenticator.
type APIKeyConfig struct {
	// HeaderName is the header containing the API key.
	// Default: "X-API-Key"
	HeaderName string
}

// APIKeyInfo describes a registered API key.
type APIKeyInfo struct {
	// ID is a unique identifier for this key.
	ID string

	// KeyHash is the SHA-256 hex digest of the key.
	KeyHash string

	// Principal is the identity associated with this key.
	Principal string

	// ExpiresAt is when this key expires (zero = never).
	ExpiresAt time.Time
}

// APIKeyStore looks up keys by hash.
type APIKeyStore interface {
	// Lookup retrieves an API key by its hash. Returns nil if not found.
	Lookup(ctx context.Context, keyHash string) (*APIKeyInfo, error)
}

// APIKeyAuthenticator validates API keys.
type APIKeyAuthenticator struct {
	config APIKeyConfig
	store  APIKeyStore
}

// NewAPIKeyAuthenticator creates a new API key authenticator.
func NewAPIKeyAuthenticator(config APIKeyConfig, store APIKeyStore) *APIKeyAuthenticator {
	if config.HeaderName == "" {
		config.HeaderName = DefaultAPIKeyHeader
	}
	return &APIKeyAuthenticator{config: config, store: store}
}

// Name returns "api_key".
func (a *APIKeyAuthenticator) Name() string {
	return string(AuthMethodAPIKey)
}

// Supports returns true if the request contains an API key header.
func (a *APIKeyAuthenticator) Supports(_ context.Context, req *Request) bool {
	return req.Header(a.config.HeaderName) != ""
}

// Authenticate validates the API key.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, req *Request) (*Result, error) {
	apiKey := strings.TrimSpace(req.Header(a.config.HeaderName))
	if apiKey == "" {
		return Failure(ErrMissingCredentials, a.Name()), nil
	}

	info, err := a.store.Lookup(ctx, HashAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if info == nil {
		return Failure(ErrInvalidCredentials, a.Name()), nil
	}
	if !info.ExpiresAt.IsZero() && time.Now().After(info.ExpiresAt) {
		return Failure(ErrTokenExpired, a.Name()), nil
	}

	return Success(&Identity{
		Principal:    info.Principal,
		Method:       AuthMethodAPIKey,
		ExpiresAt:    info.ExpiresAt,
		CredentialID: info.ID,
	}), nil
}

// HashAPIKey hashes an API key using SHA-256 for storage.
func HashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// MemoryAPIKeyStore is an in-memory API key store.
type MemoryAPIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*APIKeyInfo // keyed by hash
}

// NewMemoryAPIKeyStore creates a new in-memory API key store.
func NewMemoryAPIKeyStore() *MemoryAPIKeyStore {
	return &MemoryAPIKeyStore{keys: make(map[string]*APIKeyInfo)}
}

// ParseAPIKeys builds a store from a comma-separated list of keys. Each
// entry is either "principal=key" or a bare key, which is named
// "apikey-<n>" by position.
func ParseAPIKeys(list string) (*MemoryAPIKeyStore, error) {
	store := NewMemoryAPIKeyStore()
	n := 0
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		n++

		principal, key, named := strings.Cut(entry, "=")
		if !named {
			principal, key = fmt.Sprintf("apikey-%d", n), entry
		}
		principal, key = strings.TrimSpace(principal), strings.TrimSpace(key)
		if principal == "" || key == "" {
			return nil, fmt.Errorf("%w: api key entry %d is incomplete", ErrInvalidCredentials, n)
		}

		store.Add(&APIKeyInfo{
			ID:        fmt.Sprintf("key-%d", n),
			KeyHash:   HashAPIKey(key),
			Principal: principal,
		})
	}
	return store, nil
}

// Lookup retrieves an API key by its hash.
func (s *MemoryAPIKeyStore) Lookup(_ context.Context, keyHash string) (*APIKeyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[keyHash], nil
}

// Add adds an API key to the store.
func (s *MemoryAPIKeyStore) Add(info *APIKeyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[info.KeyHash] = info
}

// Len returns the number of registered keys.
func (s *MemoryAPIKeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

var (
	_ Authenticator = (*APIKeyAuthenticator)(nil)
	_ APIKeyStore   = (*MemoryAPIKeyStore)(nil)
)
