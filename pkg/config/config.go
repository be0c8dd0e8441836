// Package config holds the persistent settings of the websurf agent: surf
// run parameters and the domain allowlist, stored in a YAML file, plus the
// one-shot construction of the remote connection configuration from the
// environment.
package config

import "sync"

var (
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates and loads the global configuration manager. It should
// be called once at application startup; configPath empty selects the
// default location.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	manager := NewManager(store)
	if err := manager.RegisterSection(NewSurfSection()); err != nil {
		return err
	}
	if err := manager.RegisterSection(NewDomainAllowlistSection()); err != nil {
		return err
	}
	if err := manager.LoadAll(); err != nil {
		return err
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager. Panics if Initialize
// has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been loaded.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetSurf returns the surf settings section from global config.
// Returns nil if config is not initialized.
func GetSurf() *SurfSection {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(SectionIDSurf)
	if !ok {
		return nil
	}
	surf, ok := section.(*SurfSection)
	if !ok {
		return nil
	}
	return surf
}

// GetDomainAllowlist returns the domain allowlist section from global
// config. Returns nil if config is not initialized.
func GetDomainAllowlist() *DomainAllowlistSection {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(SectionIDDomainAllowlist)
	if !ok {
		return nil
	}
	allowlist, ok := section.(*DomainAllowlistSection)
	if !ok {
		return nil
	}
	return allowlist
}
