package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		expected    Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "http://api.example:9090/api", "-t", "5", "-d", "/tmp/s.db", "-i", "30"},
			expected: Config{
				BaseURL:                "http://api.example:9090/api",
				RequestTimeout:         5 * time.Second,
				SessionDBPath:          "/tmp/s.db",
				ProfileRefreshInterval: 30 * time.Second,
			},
		},
		{
			name:        "non-numeric interval panics",
			args:        []string{"cmd", "-i", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, *config)
		})
	}
}
