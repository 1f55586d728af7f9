package secret

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvProviderName is the provider name of EnvProvider.
const EnvProviderName = "env"

// EnvProvider resolves references by environment variable name:
//
//	secretref:env:JUGS_SIGNING_KEY
type EnvProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvProvider returns a provider reading the process environment.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{lookup: os.LookupEnv}
}

// Name returns "env".
func (p *EnvProvider) Name() string { return EnvProviderName }

// Resolve returns the value of the variable named by ref.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	name := strings.TrimSpace(ref)
	v, ok := p.lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: env %q", ErrNotFound, name)
	}
	return v, nil
}

// Close is a no-op.
func (p *EnvProvider) Close() error { return nil }
