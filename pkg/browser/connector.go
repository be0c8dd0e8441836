package browser

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/websurf/pkg/logging"
)

// launchOptionsHeader is the header Playwright automation servers read for
// per-connection browser launch options.
const launchOptionsHeader = "x-playwright-launch-options"

// startDriver installs (driver only, never browsers) and runs the
// automation client driver. Replaceable in tests.
var startDriver = func(opts *playwright.RunOptions) (*playwright.Playwright, error) {
	if err := playwright.Install(opts); err != nil {
		return nil, err
	}
	return playwright.Run(opts)
}

// browserDialer is the subset of playwright.BrowserType the connector
// needs. It deliberately excludes Launch: this package can only attach to
// remote browsers.
type browserDialer interface {
	Connect(url string, options ...playwright.BrowserTypeConnectOptions) (playwright.Browser, error)
	ConnectOverCDP(endpointURL string, options ...playwright.BrowserTypeConnectOverCDPOptions) (playwright.Browser, error)
}

// Connector creates remote browser sessions. One connector can create any
// number of independent sessions; it holds no per-session state.
type Connector struct {
	pw     *playwright.Playwright
	dialer browserDialer
	log    *logging.Logger

	connectTimeout float64
}

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithConnectTimeout sets the connection handshake timeout in milliseconds.
func WithConnectTimeout(ms float64) ConnectorOption {
	return func(c *Connector) {
		c.connectTimeout = ms
	}
}

// NewConnector starts the automation client driver and returns a connector.
// Browsers are never installed or launched locally; only the driver runs in
// this process. The debug flag is handed to the driver's own verbosity
// switch.
func NewConnector(debug string, opts ...ConnectorOption) (*Connector, error) {
	log, _ := logging.NewLogger("connector")

	runOpts := &playwright.RunOptions{
		SkipInstallBrowsers: true,
		Verbose:             debug != "",
		Stdout:              io.Discard,
		Stderr:              io.Discard,
	}
	if debug != "" {
		// Keep driver diagnostics visible in the session log.
		runOpts.Stdout = log.Writer()
		runOpts.Stderr = log.Writer()
	}

	// A driver that fails to start is a local environment problem, not a
	// remote endpoint failure, so it is not a ConnectionError.
	pw, err := startDriver(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start automation driver: %w", err)
	}

	c := &Connector{
		pw:             pw,
		dialer:         pw.Chromium,
		log:            log,
		connectTimeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateSession classifies the connection URL, opens the matching transport
// and returns a session bound to the remote browser.
//
// A bad URL or scheme fails with a ConfigurationError before any network
// I/O; a missing init script fails with a MissingAssetError; a refused or
// timed-out connection fails with a ConnectionError. All three are terminal
// for the session being created.
func (c *Connector) CreateSession(cfg ConnectionConfig, opts SessionOptions) (*Session, error) {
	kind, err := ClassifyTransport(cfg.URL)
	if err != nil {
		return nil, err
	}

	// The init script is a hard precondition for any page interaction, so
	// verify it before opening the connection.
	if err := VerifyInitAsset(opts.InitScriptPath); err != nil {
		return nil, err
	}

	s := newSession(kind, opts)
	if err := s.connect(c.dialer, cfg, c.connectTimeout, c.log); err != nil {
		return nil, err
	}
	return s, nil
}

// Close stops the automation client driver. Sessions created by this
// connector must be closed first.
func (c *Connector) Close() error {
	defer c.log.Close()
	return c.pw.Stop()
}

// newSession builds an unconnected session with defaults applied.
func newSession(kind TransportKind, opts SessionOptions) *Session {
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	log, _ := logging.NewLogger("session")
	return &Session{
		ID:        uuid.New().String(),
		Transport: kind,
		opts:      opts,
		state:     StateUnconfigured,
		createdAt: time.Now(),
		log:       log,
	}
}

// connect opens the transport and binds the browser handle to the session.
// On failure the session ends in StateFailed and never reconnects.
func (s *Session) connect(dialer browserDialer, cfg ConnectionConfig, timeout float64, log *logging.Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transition(StateConnecting); err != nil {
		return err
	}

	var (
		browser playwright.Browser
		err     error
	)

	switch s.Transport {
	case TransportWebSocketServer:
		// Forward the headless preference to servers that launch a browser
		// per connection. Servers with a fixed browser ignore the header.
		launchOpts, _ := json.Marshal(map[string]bool{"headless": cfg.Headless})
		log.Infof("connecting to automation server at %s (headless=%t)", cfg.URL, cfg.Headless)
		browser, err = dialer.Connect(cfg.URL, playwright.BrowserTypeConnectOptions{
			Timeout: playwright.Float(timeout),
			Headers: map[string]string{launchOptionsHeader: string(launchOpts)},
		})

	case TransportHTTPDebugEndpoint:
		if !cfg.Headless {
			log.Warnf("headless=false requested, but the %s transport cannot change the mode of an already-running browser; ignoring", s.Transport)
		}
		log.Infof("attaching to remote debugging endpoint at %s", cfg.URL)
		browser, err = dialer.ConnectOverCDP(cfg.URL, playwright.BrowserTypeConnectOverCDPOptions{
			Timeout: playwright.Float(timeout),
		})
	}

	if err != nil {
		// Terminal. No retry, and never a local browser instead.
		if terr := s.transition(StateFailed); terr != nil {
			log.Errorf("state error on failed connect: %v", terr)
		}
		return &ConnectionError{Endpoint: cfg.URL, Transport: s.Transport, Err: err}
	}

	if err := s.bind(browser); err != nil {
		if terr := s.transition(StateFailed); terr != nil {
			log.Errorf("state error on failed bind: %v", terr)
		}
		browser.Close()
		return &ConnectionError{Endpoint: cfg.URL, Transport: s.Transport, Err: err}
	}

	return s.transition(StateConnected)
}
