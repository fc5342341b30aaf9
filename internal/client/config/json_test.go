package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads values from file named by flag", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"base_url":                   "http://api.example:9000/api",
			"request_timeout_s":          3,
			"session_db_path":            "sess.db",
			"profile_refresh_interval_s": 15,
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJSON(cfg)

		assert.Equal(t, "http://api.example:9000/api", cfg.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "sess.db", cfg.SessionDBPath)
		assert.Equal(t, 15*time.Second, cfg.ProfileRefreshInterval)
	})

	t.Run("no flag leaves config unchanged", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{BaseURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		parseJSON(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.BaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("partial file overrides only present fields", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"base_url": "http://partial:1/api"})
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJSON(cfg)

		assert.Equal(t, "http://partial:1/api", cfg.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})

	t.Run("unreadable file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "missing.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJSON(cfg) })
	})
}
