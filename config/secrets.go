package config

import (
	"context"
	"fmt"

	"github.com/jonwraymond/jugsolver/secret"
)

// resolveSecrets expands env references and secretref values in the
// credential fields. Other fields are taken literally.
func (c *Config) resolveSecrets(ctx context.Context, r *secret.Resolver) error {
	if len(c.Auth.APIKeys) > 0 {
		keys, err := r.ResolveSlice(ctx, c.Auth.APIKeys)
		if err != nil {
			return fmt.Errorf("config: api keys: %w", err)
		}
		c.Auth.APIKeys = keys
	}

	if c.Auth.JWTSecret != "" {
		s, err := r.ResolveValue(ctx, c.Auth.JWTSecret)
		if err != nil {
			return fmt.Errorf("config: jwt secret: %w", err)
		}
		c.Auth.JWTSecret = s
	}
	return nil
}
