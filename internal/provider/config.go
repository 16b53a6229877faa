package provider

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig represents an optional promptplay.yaml file.
type ProvidersConfig struct {
	Providers []ProviderConfig `yaml:"providers"`
	Strategy  StrategyConfig   `yaml:"strategy,omitempty"`
}

// ProviderConfig holds the settings of one backend as written in the file.
type ProviderConfig struct {
	Name    string                 `yaml:"name" json:"name"`
	Enabled bool                   `yaml:"enabled" json:"enabled"`
	Config  map[string]interface{} `yaml:"config,omitempty" json:"config,omitempty"`
}

// StrategyConfig represents the provider selection strategy
type StrategyConfig struct {
	Preference []string      `yaml:"preference,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
}

// LoadProvidersConfig loads provider configuration from a YAML file.
// ${VAR} references are expanded from the environment first.
func LoadProvidersConfig(path string) (*ProvidersConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	configStr := os.ExpandEnv(string(data))

	var config ProvidersConfig
	if err := yaml.Unmarshal([]byte(configStr), &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := ValidateProvidersConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// ValidateProvidersConfig validates a providers configuration
func ValidateProvidersConfig(config *ProvidersConfig) error {
	seen := make(map[string]bool)
	for i, p := range config.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("provider %s configured twice", p.Name)
		}
		seen[p.Name] = true

		if v, ok := p.Config["max_tokens"]; ok {
			if n, ok := v.(int); !ok || n <= 0 {
				return fmt.Errorf("provider %s: max_tokens must be a positive integer", p.Name)
			}
		}
	}

	if config.Strategy.Timeout < 0 {
		return fmt.Errorf("strategy timeout must be non-negative")
	}

	return nil
}

// Get returns the enabled entry for name.
func (c *ProvidersConfig) Get(name string) (*ProviderConfig, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Providers {
		if c.Providers[i].Name == name && c.Providers[i].Enabled {
			return &c.Providers[i], true
		}
	}
	return nil, false
}

func (p *ProviderConfig) str(key string) string {
	if p == nil {
		return ""
	}
	s, _ := p.Config[key].(string)
	return s
}

func (p *ProviderConfig) num(key string) int {
	if p == nil {
		return 0
	}
	n, _ := p.Config[key].(int)
	return n
}
