package config

import "fmt"

// SectionIDSurf is the identifier for the surf settings section.
const SectionIDSurf = "surf"

// Surf setting defaults. The viewport matches the observation size the
// surfing prompts were tuned against.
const (
	DefaultStartPage      = "https://www.bing.com/"
	DefaultModel          = "gpt-4o"
	DefaultMaxTurns       = 20
	DefaultViewportWidth  = 1440
	DefaultViewportHeight = 900
	DefaultPageTextLimit  = 8000
)

// SurfSection holds the settings of a surfing run: where to start, how the
// page is observed, and where artifacts land.
type SurfSection struct {
	startPage      string
	model          string
	maxTurns       int
	viewportWidth  int
	viewportHeight int
	pageTextLimit  int
	downloadsDir   string
	debugDir       string
}

// NewSurfSection creates a surf section with defaults.
func NewSurfSection() *SurfSection {
	return &SurfSection{
		startPage:      DefaultStartPage,
		model:          DefaultModel,
		maxTurns:       DefaultMaxTurns,
		viewportWidth:  DefaultViewportWidth,
		viewportHeight: DefaultViewportHeight,
		pageTextLimit:  DefaultPageTextLimit,
	}
}

// ID returns the section identifier.
func (s *SurfSection) ID() string {
	return SectionIDSurf
}

// Title returns the section title.
func (s *SurfSection) Title() string {
	return "Surf Settings"
}

// Description returns the section description.
func (s *SurfSection) Description() string {
	return "Start page, observation sizing and artifact directories for surfing runs"
}

// Data returns the current configuration data.
func (s *SurfSection) Data() map[string]interface{} {
	return map[string]interface{}{
		"start_page":      s.startPage,
		"model":           s.model,
		"max_turns":       s.maxTurns,
		"viewport_width":  s.viewportWidth,
		"viewport_height": s.viewportHeight,
		"page_text_limit": s.pageTextLimit,
		"downloads_dir":   s.downloadsDir,
		"debug_dir":       s.debugDir,
	}
}

// SetData updates the configuration from the provided data.
func (s *SurfSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	if v, ok := data["start_page"]; ok {
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("start_page must be a string, got %T", v)
		}
		if str != "" {
			s.startPage = str
		}
	}
	if v, ok := data["model"]; ok {
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("model must be a string, got %T", v)
		}
		if str != "" {
			s.model = str
		}
	}
	if v, ok := data["downloads_dir"]; ok {
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("downloads_dir must be a string, got %T", v)
		}
		s.downloadsDir = str
	}
	if v, ok := data["debug_dir"]; ok {
		str, ok := v.(string)
		if !ok {
			return fmt.Errorf("debug_dir must be a string, got %T", v)
		}
		s.debugDir = str
	}

	for key, dst := range map[string]*int{
		"max_turns":       &s.maxTurns,
		"viewport_width":  &s.viewportWidth,
		"viewport_height": &s.viewportHeight,
		"page_text_limit": &s.pageTextLimit,
	} {
		v, ok := data[key]
		if !ok {
			continue
		}
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n > 0 {
			*dst = n
		}
	}

	return nil
}

// toInt accepts the numeric types YAML decoding produces.
func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// StartPage returns the URL the surfer opens first.
func (s *SurfSection) StartPage() string { return s.startPage }

// Model returns the LLM model identifier.
func (s *SurfSection) Model() string { return s.model }

// MaxTurns returns the turn budget for one run.
func (s *SurfSection) MaxTurns() int { return s.maxTurns }

// Viewport returns the configured viewport dimensions.
func (s *SurfSection) Viewport() (width, height int) {
	return s.viewportWidth, s.viewportHeight
}

// PageTextLimit returns the character budget for page text observations.
func (s *SurfSection) PageTextLimit() int { return s.pageTextLimit }

// DownloadsDir returns the download capture directory, empty to disable.
func (s *SurfSection) DownloadsDir() string { return s.downloadsDir }

// DebugDir returns the directory for run artifacts, empty to disable.
func (s *SurfSection) DebugDir() string { return s.debugDir }
