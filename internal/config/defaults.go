package config

// DefaultCatalogSources point at the ByMykel community CS2 item API, the
// same bulk feed the bot has always indexed.
var DefaultCatalogSources = []CatalogSource{
	{
		Name: "all_items",
		URL:  "https://raw.githubusercontent.com/ByMykel/CSGO-API/main/public/api/en/all.json",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              8080,
		CatalogSources:    DefaultCatalogSources,
		InventoryPageSize: 8,
		SessionTTL:        "1h",
		Log: LogConfig{
			File: "cshub.log",
		},
	}
}
