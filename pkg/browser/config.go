package browser

// Default session parameters, matching the remote surfing profile the
// agent was tuned against.
const (
	DefaultViewportWidth  = 1440
	DefaultViewportHeight = 900

	// DefaultTimeout is the default timeout for page operations and for
	// the connection handshake, in milliseconds.
	DefaultTimeout float64 = 60000
)

// ConnectionConfig describes how to reach the remote browser process. It is
// built once at process start and passed by value; the connector never
// consults ambient environment state.
type ConnectionConfig struct {
	// URL is the remote endpoint. Required: there is no default, and an
	// empty URL is a ConfigurationError. The scheme selects the transport.
	URL string

	// Headless is the requested headless mode. Honored only by transports
	// that let the client influence browser launch; otherwise it is logged
	// and ignored.
	Headless bool

	// Debug is an opaque verbosity switch passed through to the underlying
	// automation client. Empty disables client debug output.
	Debug string
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// SessionOptions configures the session built on top of a connection.
type SessionOptions struct {
	// InitScriptPath is the page initialization script installed into the
	// browser context before any navigation. Required; verified for
	// presence and readability before the connection is attempted.
	InitScriptPath string

	// Viewport sets the page viewport. Nil selects the default size.
	Viewport *Viewport

	// Timeout is the default timeout for page operations in milliseconds.
	// Zero selects DefaultTimeout.
	Timeout float64

	// UserAgent overrides the context user agent when non-empty.
	UserAgent string

	// DownloadsDir enables download capture into the given directory when
	// non-empty.
	DownloadsDir string

	// AllowURL, when non-nil, is consulted before every navigation. A
	// returned error blocks the navigation.
	AllowURL NavigationPolicy
}

// NavigationPolicy decides whether the session may navigate to a URL.
type NavigationPolicy func(rawURL string) error
