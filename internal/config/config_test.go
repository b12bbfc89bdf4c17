package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 8, cfg.InventoryPageSize)
	assert.Equal(t, "1h", cfg.SessionTTL)
	require.Len(t, cfg.CatalogSources, 1)
	assert.Equal(t, "all_items", cfg.CatalogSources[0].Name)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cshub.yml")

	original := DefaultConfig()
	original.Port = 9999
	original.InventoryPageSize = 4
	original.SessionTTL = "30m"
	original.CatalogSources = []CatalogSource{
		{Name: "skins", URL: "https://example.com/skins.json"},
		{Name: "stickers", URL: "https://example.com/stickers.json"},
	}

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, original.Port, loaded.Port)
	assert.Equal(t, original.InventoryPageSize, loaded.InventoryPageSize)
	assert.Equal(t, original.SessionTTL, loaded.SessionTTL)
	assert.Equal(t, original.CatalogSources, loaded.CatalogSources)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Port, cfg.Port)
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("CSHUB_PORT", "7070")
	t.Setenv("CSHUB_STEAM_API_KEY", "abc123")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "abc123", cfg.SteamAPIKey)
}

func TestBareSteamKeyFallback(t *testing.T) {
	os.Unsetenv("CSHUB_STEAM_API_KEY")
	t.Setenv("STEAM_API_KEY", "fallback-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "fallback-key", cfg.SteamAPIKey)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"no sources", func(c *Config) { c.CatalogSources = nil }},
		{"source without url", func(c *Config) { c.CatalogSources = []CatalogSource{{Name: "x"}} }},
		{"bad page size", func(c *Config) { c.InventoryPageSize = -1 }},
		{"bad ttl", func(c *Config) { c.SessionTTL = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSessionDuration(t *testing.T) {
	cfg := DefaultConfig()
	d, err := cfg.SessionDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)
}
