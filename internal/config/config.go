package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CSHUB_*). A missing file is not an error;
// defaults plus the environment then fully determine the config.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CSHUB_STEAM_API_KEY -> steam_api_key, etc.
	if err := k.Load(env.Provider("CSHUB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CSHUB_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// A bare STEAM_API_KEY, typically set through .env, works as a final
	// fallback.
	if cfg.SteamAPIKey == "" {
		cfg.SteamAPIKey = os.Getenv("STEAM_API_KEY")
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. A missing
// Steam API key is deliberately not a validation error: the bot runs without
// it, with profile lookups degraded.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in (0, 65535], got %d", c.Port)
	}
	if len(c.CatalogSources) == 0 {
		return fmt.Errorf("at least one catalog source is required")
	}
	for i, src := range c.CatalogSources {
		if src.Name == "" {
			return fmt.Errorf("catalog_sources[%d]: name is required", i)
		}
		if src.URL == "" {
			return fmt.Errorf("catalog_sources[%d] (%s): url is required", i, src.Name)
		}
	}
	if c.InventoryPageSize <= 0 {
		return fmt.Errorf("inventory_page_size must be positive, got %d", c.InventoryPageSize)
	}
	if _, err := c.SessionDuration(); err != nil {
		return fmt.Errorf("invalid session_ttl %q: %w", c.SessionTTL, err)
	}
	return nil
}

// SessionDuration parses SessionTTL.
func (c *Config) SessionDuration() (time.Duration, error) {
	return time.ParseDuration(c.SessionTTL)
}
