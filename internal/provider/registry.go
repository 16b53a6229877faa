package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Factory builds a client from resolved settings.
type Factory func(ctx context.Context, s Settings) (ChatClient, error)

// Backend describes a chat backend that can be selected by name.
type Backend struct {
	Name         string
	Aliases      []string
	EnvPrefix    string
	DefaultModel string
	Factory      Factory
}

// Registry holds the known backends in registration order.
type Registry struct {
	mu       sync.RWMutex
	backends []*Backend
	byName   map[string]*Backend
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Backend)}
}

// DefaultRegistry returns a registry with the OpenAI and Gemini backends.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(&Backend{
		Name:         "openai",
		EnvPrefix:    "OPENAI",
		DefaultModel: DefaultOpenAIModel,
		Factory: func(_ context.Context, s Settings) (ChatClient, error) {
			return NewOpenAIClient(s)
		},
	})
	_ = r.Register(&Backend{
		Name:         "gemini",
		Aliases:      []string{"google"},
		EnvPrefix:    "GEMINI",
		DefaultModel: DefaultGeminiModel,
		Factory: func(ctx context.Context, s Settings) (ChatClient, error) {
			return NewGeminiClient(ctx, s)
		},
	})
	return r
}

// Register adds a backend. Names and aliases are case-insensitive.
func (r *Registry) Register(b *Backend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{b.Name}, b.Aliases...)
	for _, k := range keys {
		if _, exists := r.byName[strings.ToLower(k)]; exists {
			return fmt.Errorf("provider %s already registered", k)
		}
	}
	for _, k := range keys {
		r.byName[strings.ToLower(k)] = b
	}
	r.backends = append(r.backends, b)
	return nil
}

// Lookup finds a backend by name or alias.
func (r *Registry) Lookup(name string) (*Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// Backends returns the registered backends in registration order.
func (r *Registry) Backends() []*Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Backend(nil), r.backends...)
}

// List returns all registered backend names
func (r *Registry) List() []string {
	var names []string
	for _, b := range r.Backends() {
		names = append(names, b.Name)
	}
	return names
}
