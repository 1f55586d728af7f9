package secret

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// RefPrefix marks a value, or a token inside a value, as a secret reference.
const RefPrefix = "secretref:"

// Resolver turns configuration values into secrets.
//
// A value is first expanded with ExpandEnvStrict. If the whole expanded value
// is a reference it is replaced by the provider's answer; otherwise every
// whitespace-delimited reference inside it is replaced in place.
type Resolver struct {
	mu        sync.RWMutex
	providers map[string]Provider
	strict    bool
}

// NewResolver creates a resolver over providers. A strict resolver rejects
// empty provider values.
func NewResolver(strict bool, providers ...Provider) *Resolver {
	r := &Resolver{providers: make(map[string]Provider), strict: strict}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// NewDefaultResolver creates a strict resolver with every provider in
// DefaultRegistry.
func NewDefaultResolver() (*Resolver, error) {
	providers, err := DefaultRegistry.CreateAll(nil)
	if err != nil {
		return nil, err
	}
	return NewResolver(true, providers...), nil
}

// Register adds or replaces a provider.
func (r *Resolver) Register(p Provider) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.providers[p.Name()] = p
	r.mu.Unlock()
}

// ResolveValue resolves one configuration value.
func (r *Resolver) ResolveValue(ctx context.Context, value string) (string, error) {
	expanded, err := ExpandEnvStrict(value)
	if err != nil {
		return "", err
	}

	if provider, ref, ok := ParseSecretRef(expanded); ok {
		return r.resolveRef(ctx, provider, ref)
	}
	if !strings.Contains(expanded, RefPrefix) {
		return expanded, nil
	}

	var firstErr error
	out := inlineRefPattern.ReplaceAllStringFunc(expanded, func(token string) string {
		if firstErr != nil {
			return token
		}
		provider, ref, _ := ParseSecretRef(token)
		v, err := r.resolveRef(ctx, provider, ref)
		if err != nil {
			firstErr = err
			return token
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// ResolveSlice resolves each value, stopping at the first failure.
func (r *Resolver) ResolveSlice(ctx context.Context, values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for i, v := range values {
		resolved, err := r.ResolveValue(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("resolve [%d]: %w", i, err)
		}
		out = append(out, resolved)
	}
	return out, nil
}

// ResolveMap resolves each value of input.
func (r *Resolver) ResolveMap(ctx context.Context, input map[string]string) (map[string]string, error) {
	if input == nil {
		return nil, nil
	}
	out := make(map[string]string, len(input))
	for k, v := range input {
		resolved, err := r.ResolveValue(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", k, err)
		}
		out[k] = resolved
	}
	return out, nil
}

// Close closes every registered provider.
func (r *Resolver) Close() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, p := range r.providers {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// ParseSecretRef splits "secretref:<provider>:<ref>". The ref may itself
// contain colons.
func ParseSecretRef(value string) (provider, ref string, ok bool) {
	rest, found := strings.CutPrefix(value, RefPrefix)
	if !found {
		return "", "", false
	}
	provider, ref, found = strings.Cut(rest, ":")
	if !found || provider == "" || ref == "" {
		return "", "", false
	}
	return provider, ref, true
}

var inlineRefPattern = regexp.MustCompile(`secretref:[^:\s]+:\S+`)

func (r *Resolver) resolveRef(ctx context.Context, providerName, ref string) (string, error) {
	r.mu.RLock()
	p, ok := r.providers[providerName]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrProviderNotRegistered, providerName)
	}

	v, err := p.Resolve(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("secret provider %q: %w", providerName, err)
	}
	if r.strict && v == "" {
		return "", fmt.Errorf("%w: provider %q", ErrEmptyValue, providerName)
	}
	return v, nil
}
