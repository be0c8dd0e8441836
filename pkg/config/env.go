package config

import (
	"os"
	"strings"

	"github.com/entrhq/websurf/pkg/browser"
)

// Environment variables read once at process start. The values are folded
// into an explicit ConnectionConfig; nothing else in the program consults
// the environment for connection settings.
const (
	// EnvServerURL is the remote browser endpoint. Required: there is no
	// default, and its scheme selects the transport.
	EnvServerURL = "PLAYWRIGHT_SERVER_URL"

	// EnvHeadless requests headless mode where the transport supports it.
	// Boolean-like; defaults to true.
	EnvHeadless = "HEADLESS"

	// EnvDebug is passed through opaquely to the automation client's own
	// verbosity switch.
	EnvDebug = "DEBUG"
)

// ConnectionFromEnv builds the connection configuration from the process
// environment. A missing or empty PLAYWRIGHT_SERVER_URL is a hard
// configuration error; the URL itself is validated when the session is
// created.
func ConnectionFromEnv() (browser.ConnectionConfig, error) {
	rawURL := strings.TrimSpace(os.Getenv(EnvServerURL))
	if rawURL == "" {
		return browser.ConnectionConfig{}, &browser.ConfigurationError{
			Reason: EnvServerURL + " must be set to the remote browser endpoint",
		}
	}

	return browser.ConnectionConfig{
		URL:      rawURL,
		Headless: parseBoolDefault(os.Getenv(EnvHeadless), true),
		Debug:    os.Getenv(EnvDebug),
	}, nil
}

// parseBoolDefault interprets boolean-like strings loosely, falling back to
// the default for anything unrecognized.
func parseBoolDefault(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}
