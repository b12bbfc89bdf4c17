package config

// CatalogSource describes one remote item-catalog feed. Feeds are fetched
// in order at startup; later feeds overwrite earlier entries that share an
// item id.
type CatalogSource struct {
	Name string `yaml:"name" koanf:"name"`
	URL  string `yaml:"url" koanf:"url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	File  string `yaml:"file" koanf:"file"`
	Prod  bool   `yaml:"prod" koanf:"prod"`
	Debug bool   `yaml:"debug" koanf:"debug"`
}

// Config is the top-level bot configuration, corresponding to .cshub.yml.
type Config struct {
	// SteamAPIKey authorizes the official profile feed. Leaving it empty is
	// a configuration error reported at startup; profile lookups then always
	// come back empty.
	SteamAPIKey string `yaml:"steam_api_key" koanf:"steam_api_key"`

	Port          int    `yaml:"port" koanf:"port"`
	WebhookSecret string `yaml:"webhook_secret" koanf:"webhook_secret"`
	AllowAll      bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	CatalogSources []CatalogSource `yaml:"catalog_sources" koanf:"catalog_sources"`

	// InventoryPageSize is the number of holdings shown per keyboard page.
	InventoryPageSize int `yaml:"inventory_page_size" koanf:"inventory_page_size"`

	// SessionTTL is how long an idle conversation keeps its context, as a
	// Go duration string. Expired sessions surface as "session expired"
	// notices on the next callback.
	SessionTTL string `yaml:"session_ttl" koanf:"session_ttl"`

	Log LogConfig `yaml:"log" koanf:"log"`
}
