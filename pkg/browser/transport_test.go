package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want TransportKind
	}{
		{"ws scheme", "ws://localhost:3001", TransportWebSocketServer},
		{"wss scheme", "wss://pw.internal:443/playwright", TransportWebSocketServer},
		{"http scheme", "http://localhost:9222", TransportHTTPDebugEndpoint},
		{"https scheme", "https://browser.internal:9222/devtools", TransportHTTPDebugEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ClassifyTransport(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestClassifyTransportRejectsInvalidURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty URL", ""},
		{"ftp scheme", "ftp://x"},
		{"file scheme", "file:///tmp/browser"},
		{"scheme-less", "localhost:9222"},
		{"garbage", "://nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ClassifyTransport(tt.url)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			if tt.url != "" {
				assert.Contains(t, cfgErr.Error(), tt.url,
					"the offending value is attached for diagnostics")
			}
		})
	}
}

func TestTransportKindString(t *testing.T) {
	assert.Equal(t, "websocket-server", TransportWebSocketServer.String())
	assert.Equal(t, "http-debug-endpoint", TransportHTTPDebugEndpoint.String())
}
