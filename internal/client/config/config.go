package config

import "time"

// Config holds runtime settings for the shopping client.
//
// Fields:
//   - BaseURL: base URL of the backend REST API.
//   - RequestTimeout: per-request deadline for all API calls.
//   - CreateShopTimeout: dedicated deadline for shop creation.
//   - StoragePath: sqlite file backing the persisted key-value store.
//   - CacheTTL: lifetime of cached public-shop reads.
type Config struct {
	BaseURL           string
	RequestTimeout    time.Duration
	CreateShopTimeout time.Duration
	StoragePath       string
	CacheTTL          time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.CreateShopTimeout = 5 * time.Second
	c.StoragePath = "shopclient.db"
	c.CacheTTL = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file if present), a JSON file (if given
// via -c/-config) and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
