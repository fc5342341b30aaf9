// Package config loads runtime configuration for the portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the moderation backend API
//	-t int      per-request timeout (seconds)
//	-d string   path to the local session database
//	-i int      background profile refresh interval (seconds)
//
// # JSON schema
//
// Durations are given as integer seconds:
//
//	{
//	  "base_url": "https://portal.example.com/api",
//	  "request_timeout_s": 10,
//	  "session_db_path": "portal.db",
//	  "profile_refresh_interval_s": 60
//	}
//
// Primary API
//
//   - type Config                     — holds BaseURL, RequestTimeout, SessionDBPath, ProfileRefreshInterval
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
