package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/framescope/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a map for tests and runs without a config
// directory. Nothing is persisted.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{values: make(map[string]any)}
}

// NewConfigStoreWith creates a store seeded with a copy of values, keyed in
// the flattened "section.key" form.
func NewConfigStoreWith(values map[string]any) *ConfigStore {
	s := NewConfigStore()
	maps.Copy(s.values, values)
	return s
}

// Get returns the raw value for key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns key as a string, or "".
func (s *ConfigStore) GetString(key string) string {
	v, _ := s.raw(key).(string)
	return v
}

// GetInt returns key as an int, or 0. int64 (TOML) and float64 (JSON)
// values are converted.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.raw(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// GetBool returns key as a bool, or false.
func (s *ConfigStore) GetBool(key string) bool {
	v, _ := s.raw(key).(bool)
	return v
}

// Set stores value under key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *ConfigStore) raw(key string) any {
	v, _ := s.Get(key)
	return v
}
