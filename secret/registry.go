package secret

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ProviderFactory creates a Provider from configuration.
type ProviderFactory func(cfg map[string]any) (Provider, error)

// Registry maps provider names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, factory ProviderFactory) error {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return ErrInvalidRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateProvider, name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates the provider registered under name.
func (r *Registry) Create(name string, cfg map[string]any) (Provider, error) {
	name = strings.TrimSpace(name)

	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotRegistered, name)
	}
	return factory(cfg)
}

// CreateAll instantiates every registered provider with the config found
// under its name in cfgs.
func (r *Registry) CreateAll(cfgs map[string]map[string]any) ([]Provider, error) {
	names := r.List()
	out := make([]Provider, 0, len(names))
	for _, name := range names {
		p, err := r.Create(name, cfgs[name])
		if err != nil {
			return nil, fmt.Errorf("secret: create %q: %w", name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// List returns registered provider names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry holds the built-in env and file providers.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(EnvProviderName, func(map[string]any) (Provider, error) {
		return NewEnvProvider(), nil
	})
	_ = r.Register(FileProviderName, func(cfg map[string]any) (Provider, error) {
		dir, _ := cfg["dir"].(string)
		return NewFileProvider(dir), nil
	})
	return r
}
