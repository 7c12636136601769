package directory

import (
	"sync"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// ConfigStore holds the directory configuration currently in effect. The
// active row is loaded at startup and swapped by reference after every
// successful save, so concurrent readers always observe either the old or
// the new configuration in full, never a mix.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *models.DirectoryConfig
}

// NewConfigStore returns an empty store; Enabled reports false until the
// first Load.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Load replaces the stored configuration.
func (s *ConfigStore) Load(cfg models.DirectoryConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
}

// Clear removes the stored configuration, disabling directory operations.
func (s *ConfigStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = nil
}

// Snapshot returns a copy of the current configuration. The second return
// value is false when no active configuration is loaded.
func (s *ConfigStore) Snapshot() (models.DirectoryConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return models.DirectoryConfig{}, false
	}
	return *s.cfg, true
}

// Enabled reports whether an active directory configuration is loaded.
// Directory-mode logins and sync runs are refused while it returns false.
func (s *ConfigStore) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg != nil && s.cfg.Active
}
