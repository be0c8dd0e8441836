package browser

import (
	"fmt"
	"net/url"
)

// TransportKind identifies how the connector reaches the remote browser.
// It is derived deterministically from the connection URL scheme; no other
// schemes are valid.
type TransportKind int

const (
	// TransportWebSocketServer connects to a Playwright automation server
	// (ws:// or wss:// URLs) and asks it for a browser.
	TransportWebSocketServer TransportKind = iota

	// TransportHTTPDebugEndpoint attaches to an already-running browser via
	// its remote debugging endpoint (http:// or https:// URLs).
	TransportHTTPDebugEndpoint
)

func (k TransportKind) String() string {
	switch k {
	case TransportWebSocketServer:
		return "websocket-server"
	case TransportHTTPDebugEndpoint:
		return "http-debug-endpoint"
	default:
		return fmt.Sprintf("transport(%d)", int(k))
	}
}

// ClassifyTransport derives the transport kind from the connection URL.
// An empty URL, an unparsable URL, or a scheme outside {ws, wss, http,
// https} returns a ConfigurationError without touching the network.
func ClassifyTransport(rawURL string) (TransportKind, error) {
	if rawURL == "" {
		return 0, &ConfigurationError{Reason: "connection URL is required, no default is assumed"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, &ConfigurationError{Value: rawURL, Reason: fmt.Sprintf("not a valid URL: %v", err)}
	}

	switch parsed.Scheme {
	case "ws", "wss":
		return TransportWebSocketServer, nil
	case "http", "https":
		return TransportHTTPDebugEndpoint, nil
	default:
		return 0, &ConfigurationError{
			Value:  rawURL,
			Reason: fmt.Sprintf("unsupported scheme %q, expected ws, wss, http or https", parsed.Scheme),
		}
	}
}
