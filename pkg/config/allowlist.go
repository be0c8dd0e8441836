package config

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// SectionIDDomainAllowlist is the identifier for the domain allowlist
// section.
const SectionIDDomainAllowlist = "domain_allowlist"

// DomainAllowlistSection restricts which hosts the surfer may navigate to.
// Patterns are glob expressions matched against the URL host, e.g.
// "*.wikipedia.org" or "docs.example.com". An empty pattern list allows
// every host.
type DomainAllowlistSection struct {
	mu       sync.RWMutex
	patterns []string
	compiled []glob.Glob
}

// NewDomainAllowlistSection creates an allowlist that permits all hosts.
func NewDomainAllowlistSection() *DomainAllowlistSection {
	return &DomainAllowlistSection{}
}

// ID returns the section identifier.
func (s *DomainAllowlistSection) ID() string {
	return SectionIDDomainAllowlist
}

// Title returns the section title.
func (s *DomainAllowlistSection) Title() string {
	return "Domain Allowlist"
}

// Description returns the section description.
func (s *DomainAllowlistSection) Description() string {
	return "Hosts the surfer may navigate to; empty allows all"
}

// Data returns the current configuration data.
func (s *DomainAllowlistSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	patterns := make([]interface{}, len(s.patterns))
	for i, p := range s.patterns {
		patterns[i] = p
	}
	return map[string]interface{}{"patterns": patterns}
}

// SetData updates the configuration from the provided data.
func (s *DomainAllowlistSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	raw, ok := data["patterns"]
	if !ok {
		return nil
	}
	rawSlice, ok := raw.([]interface{})
	if !ok {
		return fmt.Errorf("invalid patterns type: expected list, got %T", raw)
	}

	patterns := make([]string, 0, len(rawSlice))
	for i, item := range rawSlice {
		p, ok := item.(string)
		if !ok {
			return fmt.Errorf("invalid pattern at index %d: expected string, got %T", i, item)
		}
		patterns = append(patterns, p)
	}

	return s.SetPatterns(patterns)
}

// SetPatterns replaces the allowlist, compiling each glob.
func (s *DomainAllowlistSection) SetPatterns(patterns []string) error {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p), '.')
		if err != nil {
			return fmt.Errorf("invalid allowlist pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}

	s.mu.Lock()
	s.patterns = patterns
	s.compiled = compiled
	s.mu.Unlock()
	return nil
}

// Patterns returns the configured glob patterns.
func (s *DomainAllowlistSection) Patterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// AllowsHost reports whether the host matches the allowlist. An empty
// allowlist permits everything.
func (s *DomainAllowlistSection) AllowsHost(host string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.compiled) == 0 {
		return true
	}
	host = strings.ToLower(host)
	for _, g := range s.compiled {
		if g.Match(host) {
			return true
		}
	}
	return false
}

// CheckURL validates a navigation target against the allowlist. It is
// shaped to plug into the browser session's navigation policy.
func (s *DomainAllowlistSection) CheckURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid navigation URL: %w", err)
	}
	if !s.AllowsHost(parsed.Hostname()) {
		return fmt.Errorf("host %q is not in the domain allowlist", parsed.Hostname())
	}
	return nil
}
