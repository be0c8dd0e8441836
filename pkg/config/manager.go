package config

import (
	"fmt"
	"sync"
)

// Section is a named group of settings that knows how to serialize itself
// to and from the store's generic map representation.
type Section interface {
	// ID returns the section identifier used as the store key.
	ID() string

	// Title returns a short human-readable section name.
	Title() string

	// Description explains what the section controls.
	Description() string

	// Data returns the current configuration data.
	Data() map[string]interface{}

	// SetData updates the section from stored data. Unknown keys are
	// ignored; missing keys keep their defaults.
	SetData(data map[string]interface{}) error
}

// Manager coordinates sections with the backing store.
type Manager struct {
	store    Store
	mu       sync.RWMutex
	sections map[string]Section
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// RegisterSection adds a section to the manager. Section IDs must be unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}
	m.sections[id] = section
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	section, ok := m.sections[id]
	return section, ok
}

// LoadAll populates every registered section from the store.
func (m *Manager) LoadAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, section := range m.sections {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to load section %q: %w", id, err)
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
	}
	return nil
}

// SaveSection writes one section's current data through to disk.
func (m *Manager) SaveSection(id string) error {
	m.mu.RLock()
	section, ok := m.sections[id]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("section %q not registered", id)
	}
	if err := m.store.SetSection(id, section.Data()); err != nil {
		return fmt.Errorf("failed to store section %q: %w", id, err)
	}
	return m.store.Save()
}

// SaveAll writes every registered section through to disk.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	for id, section := range m.sections {
		if err := m.store.SetSection(id, section.Data()); err != nil {
			m.mu.RUnlock()
			return fmt.Errorf("failed to store section %q: %w", id, err)
		}
	}
	m.mu.RUnlock()
	return m.store.Save()
}
