package auth

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	jwtCfg := JWTConfig{Secret: testSecret}

	tests := []struct {
		name     string
		settings Settings
		wantName string
		wantErr  error
	}{
		{"none", Settings{Mode: ModeNone}, "", nil},
		{"empty", Settings{}, "", nil},
		{"apikey", Settings{Mode: ModeAPIKey, APIKeys: "k1,k2"}, "api_key", nil},
		{"apikey without keys", Settings{Mode: ModeAPIKey}, "", ErrMissingCredentials},
		{"jwt", Settings{Mode: ModeJWT, JWT: jwtCfg}, "jwt", nil},
		{"jwt without secret", Settings{Mode: ModeJWT}, "", ErrNoSecret},
		{"any", Settings{Mode: ModeAny, APIKeys: "k1", JWT: jwtCfg}, "composite", nil},
		{"any without secret", Settings{Mode: ModeAny, APIKeys: "k1"}, "", ErrNoSecret},
		{"unknown", Settings{Mode: "oauth"}, "", ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.settings)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantName == "" {
				if a != nil {
					t.Errorf("expected nil authenticator, got %s", a.Name())
				}
				return
			}
			if a == nil || a.Name() != tt.wantName {
				t.Errorf("authenticator = %v, want %s", a, tt.wantName)
			}
		})
	}
}
