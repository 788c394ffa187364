package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driven"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyHubBaseURL          = "hub.base_url"
	keyHubAPIPrefix        = "hub.api_prefix"
	keyHubTimeout          = "hub.timeout_seconds"
	keyHubRate             = "hub.rate_per_second"
	keySearchModel         = "search.model"
	keySearchK             = "search.k"
	keySearchReturnS2T     = "search.return_s2t"
	keySearchReturnObject  = "search.return_object"
	keySearchFrameClass    = "search.frame_class_filter"
	keySearchAutoTranslate = "search.auto_translate"
	keyViewResultsPerPage  = "view.results_per_page"
	keyViewNeighborFrames  = "view.neighbor_frames"
	keyHistoryBackend      = "history.backend"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
	kindModel
	kindBackend
)

var settingKeys = map[string]keyKind{
	keyHubBaseURL:          kindString,
	keyHubAPIPrefix:        kindString,
	keyHubTimeout:          kindInt,
	keyHubRate:             kindInt,
	keySearchModel:         kindModel,
	keySearchK:             kindInt,
	keySearchReturnS2T:     kindBool,
	keySearchReturnObject:  kindBool,
	keySearchFrameClass:    kindBool,
	keySearchAutoTranslate: kindBool,
	keyViewResultsPerPage:  kindInt,
	keyViewNeighborFrames:  kindInt,
	keyHistoryBackend:      kindBackend,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Hub: domain.HubSettings{
			BaseURL:        s.getString(keyHubBaseURL, defaults.Hub.BaseURL),
			APIPrefix:      strings.Trim(s.configStore.GetString(keyHubAPIPrefix), "/"),
			TimeoutSeconds: s.getInt(keyHubTimeout, defaults.Hub.TimeoutSeconds),
			RateLimit:      s.getInt(keyHubRate, defaults.Hub.RateLimit),
		},
		Query: domain.QueryDefaults{
			Model: s.getModel(defaults.Query.Model),
			Settings: domain.SearchSettings{
				K:                s.getInt(keySearchK, defaults.Query.Settings.K),
				ReturnS2T:        s.getBool(keySearchReturnS2T, defaults.Query.Settings.ReturnS2T),
				ReturnObject:     s.getBool(keySearchReturnObject, defaults.Query.Settings.ReturnObject),
				FrameClassFilter: s.getBool(keySearchFrameClass, defaults.Query.Settings.FrameClassFilter),
			},
			AutoTranslate: s.getBool(keySearchAutoTranslate, defaults.Query.AutoTranslate),
		},
		View: domain.ViewSettings{
			ResultsPerPage: s.getInt(keyViewResultsPerPage, defaults.View.ResultsPerPage),
			NeighborFrames: s.getInt(keyViewNeighborFrames, defaults.View.NeighborFrames),
		},
		History: domain.HistorySettings{
			Backend: s.getBackend(defaults.History.Backend),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyHubBaseURL, settings.Hub.BaseURL},
		{keyHubAPIPrefix, settings.Hub.APIPrefix},
		{keyHubTimeout, settings.Hub.TimeoutSeconds},
		{keyHubRate, settings.Hub.RateLimit},
		{keySearchModel, settings.Query.Model.String()},
		{keySearchK, settings.Query.Settings.K},
		{keySearchReturnS2T, settings.Query.Settings.ReturnS2T},
		{keySearchReturnObject, settings.Query.Settings.ReturnObject},
		{keySearchFrameClass, settings.Query.Settings.FrameClassFilter},
		{keySearchAutoTranslate, settings.Query.AutoTranslate},
		{keyViewResultsPerPage, settings.View.ResultsPerPage},
		{keyViewNeighborFrames, settings.View.NeighborFrames},
		{keyHistoryBackend, settings.History.Backend.String()},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates and stores a single setting given as text.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch kind {
	case kindString:
		stored = strings.TrimSpace(value)
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 || (n == 0 && key != keyHubRate) {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case kindModel:
		model := domain.Model(strings.ToUpper(strings.TrimSpace(value)))
		if !model.IsValid() {
			return fmt.Errorf("%w: unknown model %q", domain.ErrInvalidInput, value)
		}
		stored = model.String()
	case kindBackend:
		backend := domain.HistoryBackend(strings.ToLower(strings.TrimSpace(value)))
		if !backend.IsValid() {
			return fmt.Errorf("%w: unknown history backend %q", domain.ErrInvalidInput, value)
		}
		stored = backend.String()
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 || (val == 0 && key != keyHubRate) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getModel(defaultVal domain.Model) domain.Model {
	model := domain.Model(s.configStore.GetString(keySearchModel))
	if !model.IsValid() {
		return defaultVal
	}
	return model
}

func (s *SettingsService) getBackend(defaultVal domain.HistoryBackend) domain.HistoryBackend {
	backend := domain.HistoryBackend(s.configStore.GetString(keyHistoryBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
