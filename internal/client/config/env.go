package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading a
// .env file first when one exists in the working directory. A missing .env is
// not an error.
//
// Recognized variables:
//
//	SHOP_API_BASE_URL       base URL of the backend
//	SHOP_REQUEST_TIMEOUT    duration string, e.g. "10s"
//	SHOP_STORAGE_PATH       sqlite file path
//	SHOP_CACHE_TTL          duration string, e.g. "30s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SHOP_API_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SHOP_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("SHOP_STORAGE_PATH"); v != "" {
		cfg.StoragePath = v
	}
	if v := os.Getenv("SHOP_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}
}
