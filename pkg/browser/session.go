package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/websurf/pkg/logging"
)

// Session is one live connection to a remote browser. It owns its browser
// handle exclusively from creation until Close; no other session shares it.
type Session struct {
	// ID uniquely identifies this session in logs and artifacts.
	ID string

	// Transport is the transport the session was created over.
	Transport TransportKind

	opts SessionOptions

	mu      sync.Mutex
	state   SessionState
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	createdAt  time.Time
	lastUsedAt time.Time
	currentURL string

	downloads *DownloadStore
	log       *logging.Logger
}

// bind creates the browser context and page on a freshly connected browser
// handle. Callers must hold s.mu.
func (s *Session) bind(browser playwright.Browser) error {
	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.opts.Viewport.Width,
			Height: s.opts.Viewport.Height,
		},
	}
	if s.opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(s.opts.UserAgent)
	}
	if s.opts.DownloadsDir != "" {
		contextOpts.AcceptDownloads = playwright.Bool(true)
	}

	context, err := browser.NewContext(contextOpts)
	if err != nil {
		return fmt.Errorf("failed to create browser context: %w", err)
	}

	// The labeling script must be active on every page before the surfer
	// interacts with anything.
	if err := context.AddInitScript(playwright.Script{
		Path: playwright.String(s.opts.InitScriptPath),
	}); err != nil {
		context.Close()
		return fmt.Errorf("failed to install init script: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		return fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(s.opts.Timeout)

	if s.opts.DownloadsDir != "" {
		store, err := NewDownloadStore(s.opts.DownloadsDir)
		if err != nil {
			page.Close()
			context.Close()
			return err
		}
		s.downloads = store
		page.OnDownload(func(dl playwright.Download) {
			if _, derr := store.Capture(dl); derr != nil {
				s.log.Warnf("failed to capture download from %s: %v", dl.URL(), derr)
			}
		})
	}

	s.browser = browser
	s.context = context
	s.page = page
	s.currentURL = "about:blank"
	s.lastUsedAt = time.Now()
	return nil
}

// State returns the session's current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentURL returns the URL of the current page.
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentURL
}

// Downloads returns the records of files captured so far, oldest first.
// Empty unless the session was created with a downloads directory.
func (s *Session) Downloads() []DownloadRecord {
	if s.downloads == nil {
		return nil
	}
	return s.downloads.Records()
}

// beginOp marks the session busy. Page operations are rejected unless the
// session is connected and idle.
func (s *Session) beginOp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConnected {
		return fmt.Errorf("session %s is %s, not connected", s.ID, s.state)
	}
	s.lastUsedAt = time.Now()
	return s.transition(StateInUse)
}

// endOp returns the session to idle after a page operation. If the
// session was closed out from under the operation, the page handle is
// gone and nothing is touched.
func (s *Session) endOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInUse {
		return
	}
	if err := s.transition(StateConnected); err != nil {
		s.log.Errorf("state error after operation: %v", err)
	}
	s.currentURL = s.page.URL()
}

// Navigate moves the page to the given URL, honoring the navigation policy
// when one is configured.
func (s *Session) Navigate(rawURL string, waitUntil string) error {
	if s.opts.AllowURL != nil {
		if err := s.opts.AllowURL(rawURL); err != nil {
			return fmt.Errorf("navigation to %q blocked: %w", rawURL, err)
		}
	}

	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	gotoOpts := playwright.PageGotoOptions{}
	if waitUntil != "" {
		state := playwright.WaitUntilState(waitUntil)
		gotoOpts.WaitUntil = &state
	}

	if _, err := s.page.Goto(rawURL, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Click clicks the element matching the selector.
func (s *Session) Click(selector string) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	if err := s.page.Click(selector); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Fill replaces the value of the input matching the selector.
func (s *Session) Fill(selector, value string) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	if err := s.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// Press sends a key press to the element matching the selector.
func (s *Session) Press(selector, key string) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	if err := s.page.Press(selector, key); err != nil {
		return fmt.Errorf("press failed: %w", err)
	}
	return nil
}

// ScrollBy scrolls the page by the given pixel deltas.
func (s *Session) ScrollBy(deltaX, deltaY float64) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	if err := s.page.Mouse().Wheel(deltaX, deltaY); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	return nil
}

// Back navigates to the previous page in history.
func (s *Session) Back() error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	if _, err := s.page.GoBack(); err != nil {
		return fmt.Errorf("history navigation failed: %w", err)
	}
	return nil
}

// WaitForLoad blocks until the page reaches the load state.
func (s *Session) WaitForLoad() error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	if err := s.page.WaitForLoadState(); err != nil {
		return fmt.Errorf("wait for load failed: %w", err)
	}
	return nil
}

// Screenshot captures the current viewport as PNG bytes.
func (s *Session) Screenshot() ([]byte, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	png, err := s.page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return png, nil
}

// PageText extracts the cleaned text of the current page for the surfer's
// observation, truncated to maxLength characters.
func (s *Session) PageText(maxLength int) (*PageText, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	raw, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return ExtractPageText(raw, maxLength)
}

// Metadata returns the current page title and URL.
func (s *Session) Metadata() (title, url string, err error) {
	if err := s.beginOp(); err != nil {
		return "", "", err
	}
	defer s.endOp()

	title, err = s.page.Title()
	if err != nil {
		title = ""
	}
	return title, s.page.URL(), nil
}

// Close releases the browser handle. The session is terminal afterwards.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateClosed, StateFailed, StateUnconfigured:
		return nil
	}

	// Best-effort teardown, innermost resource first.
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.context != nil {
		_ = s.context.Close()
	}
	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}

	if terr := s.transition(StateClosed); terr != nil {
		s.log.Errorf("state error on close: %v", terr)
	}
	s.log.Infof("session %s closed", s.ID)
	s.log.Close()
	return err
}
