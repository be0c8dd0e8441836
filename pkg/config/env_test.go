package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/websurf/pkg/browser"
)

func TestConnectionFromEnv(t *testing.T) {
	t.Run("url required", func(t *testing.T) {
		t.Setenv(EnvServerURL, "")

		_, err := ConnectionFromEnv()
		var cfgErr *browser.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Error(), EnvServerURL)
	})

	t.Run("whitespace url is still missing", func(t *testing.T) {
		t.Setenv(EnvServerURL, "   ")

		_, err := ConnectionFromEnv()
		var cfgErr *browser.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("headless defaults to true", func(t *testing.T) {
		t.Setenv(EnvServerURL, "ws://localhost:3001")
		t.Setenv(EnvHeadless, "")

		cfg, err := ConnectionFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "ws://localhost:3001", cfg.URL)
		assert.True(t, cfg.Headless)
	})

	t.Run("headless false", func(t *testing.T) {
		t.Setenv(EnvServerURL, "http://localhost:9222")
		t.Setenv(EnvHeadless, "false")

		cfg, err := ConnectionFromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.Headless)
	})

	t.Run("debug passed through opaquely", func(t *testing.T) {
		t.Setenv(EnvServerURL, "ws://localhost:3001")
		t.Setenv(EnvDebug, "pw:api")

		cfg, err := ConnectionFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "pw:api", cfg.Debug)
	})
}

func TestParseBoolDefault(t *testing.T) {
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"off", true, false},
		{"", true, true},
		{"", false, false},
		{"banana", true, true},
		{"  true  ", false, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseBoolDefault(tt.input, tt.def),
			"input %q default %t", tt.input, tt.def)
	}
}
