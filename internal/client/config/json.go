package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/flagx"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	BaseURL           string         `json:"base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	CreateShopTimeout timex.Duration `json:"create_shop_timeout"`
	StoragePath       string         `json:"storage_path"`
	CacheTTL          timex.Duration `json:"cache_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
// Read or unmarshal errors panic (config is loaded once at startup and a
// broken config file should stop the program).
//
// Fields left empty/zero in the JSON keep their current value.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.CreateShopTimeout.Duration > 0 {
		cfg.CreateShopTimeout = time.Duration(jc.CreateShopTimeout.Duration)
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
	if jc.CacheTTL.Duration > 0 {
		cfg.CacheTTL = time.Duration(jc.CacheTTL.Duration)
	}
}
