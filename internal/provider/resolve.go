package provider

import (
	"context"
	"os"
	"strings"

	"github.com/felixgeelhaar/promptplay/internal/errors"
)

// ProviderEnv names the variable that selects a backend when no flag is given.
const ProviderEnv = "LLM_PROVIDER"

// Resolver picks a backend and its settings. Precedence: explicit name,
// then LLM_PROVIDER, then the config file's preference list, then the
// first backend whose API key variable is set.
type Resolver struct {
	Registry *Registry
	Config   *ProvidersConfig
	Getenv   func(string) string
}

// NewResolver returns a resolver over the default backends and the
// process environment.
func NewResolver(cfg *ProvidersConfig) *Resolver {
	return &Resolver{Registry: DefaultRegistry(), Config: cfg, Getenv: os.Getenv}
}

func (r *Resolver) getenv(key string) string {
	if r.Getenv == nil {
		return os.Getenv(key)
	}
	return r.Getenv(key)
}

// Resolve returns the settings of the selected backend.
func (r *Resolver) Resolve(explicit string) (Settings, error) {
	if explicit != "" {
		b, ok := r.Registry.Lookup(explicit)
		if !ok {
			return Settings{}, errors.NewProviderUnknownError(explicit)
		}
		return r.settings(b)
	}

	if name := r.getenv(ProviderEnv); name != "" {
		if b, ok := r.Registry.Lookup(name); ok {
			return r.settings(b)
		}
	}

	if r.Config != nil {
		for _, name := range r.Config.Strategy.Preference {
			b, ok := r.Registry.Lookup(name)
			if !ok {
				continue
			}
			if s, err := r.settings(b); err == nil {
				return s, nil
			}
		}
	}

	for _, b := range r.Registry.Backends() {
		if r.getenv(b.EnvPrefix+"_API_KEY") != "" {
			return r.settings(b)
		}
	}

	return Settings{}, errors.NewProviderNotConfiguredError()
}

// settings merges the file entry with the environment. File values win;
// the environment fills what the file leaves empty.
func (r *Resolver) settings(b *Backend) (Settings, error) {
	entry, _ := r.Config.Get(b.Name)

	s := Settings{
		Name:      b.Name,
		APIKey:    firstNonEmpty(entry.str("api_key"), r.getenv(b.EnvPrefix+"_API_KEY")),
		BaseURL:   firstNonEmpty(entry.str("base_url"), r.getenv(b.EnvPrefix+"_BASE_URL")),
		Model:     firstNonEmpty(entry.str("model"), r.getenv(b.EnvPrefix+"_MODEL"), b.DefaultModel),
		MaxTokens: entry.num("max_tokens"),
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = DefaultMaxTokens
	}

	if s.APIKey == "" {
		return Settings{}, errors.NewProviderNotConfiguredError().
			WithSuggestion("Set " + b.EnvPrefix + "_API_KEY for the " + b.Name + " provider")
	}
	return s, nil
}

// Open resolves a backend and builds its client.
func (r *Resolver) Open(ctx context.Context, explicit string) (ChatClient, Settings, error) {
	s, err := r.Resolve(explicit)
	if err != nil {
		return nil, Settings{}, err
	}
	b, _ := r.Registry.Lookup(s.Name)
	client, err := b.Factory(ctx, s)
	if err != nil {
		return nil, Settings{}, err
	}
	return client, s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
