package config

import "time"

// Config holds runtime settings for the portal CLI.
//
// Fields:
//   - BaseURL: base URL of the moderation backend API, including the
//     path prefix (e.g. "http://localhost:8080/api").
//   - RequestTimeout: per-request HTTP timeout.
//   - SessionDBPath: SQLite file holding the local session record.
//   - ProfileRefreshInterval: how often the background watcher re-validates
//     the session against the server.
type Config struct {
	BaseURL                string
	RequestTimeout         time.Duration
	SessionDBPath          string
	ProfileRefreshInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "portal.db"
	c.ProfileRefreshInterval = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
