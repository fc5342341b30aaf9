package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/contentmod/portal/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals are
// given in whole seconds. Zero values leave the corresponding Config field
// unchanged.
type jsonConfig struct {
	BaseURL                 string `json:"base_url"`
	RequestTimeoutS         int    `json:"request_timeout_s"`
	SessionDBPath           string `json:"session_db_path"`
	ProfileRefreshIntervalS int    `json:"profile_refresh_interval_s"`
}

// parseJSON overlays Config with values loaded from a JSON file named by the
// -c/-config flag. Missing flag means no JSON stage. Read or unmarshal
// errors panic; intended usage is defaults -> parseJSON -> parseFlags, where
// later stages override earlier ones.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

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
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeoutS > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutS) * time.Second
	}
	if jc.ProfileRefreshIntervalS > 0 {
		cfg.ProfileRefreshInterval = time.Duration(jc.ProfileRefreshIntervalS) * time.Second
	}
}
