package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
	"github.com/custodia-labs/snapfind/internal/core/ports/driving"
	"github.com/custodia-labs/snapfind/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// settingKeys lists every key the config file may hold, in display order.
var settingKeys = []string{
	driven.ConfigKeyDB,
	driven.ConfigKeyTopK,
	driven.ConfigKeyProvider,
	driven.ConfigKeyModel,
	driven.ConfigKeyPromptHint,
	driven.ConfigKeyMaxPages,
}

// SettingsService layers the config file over the built-in defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured settings. Invalid stored values are ignored
// with a warning and the default is used instead.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.configStore == nil {
		return settings, nil
	}

	if v := s.configStore.GetString(driven.ConfigKeyDB); v != "" {
		settings.DBPath = v
	}
	if v := s.configStore.GetInt(driven.ConfigKeyTopK); v > 0 && v <= domain.MaxSearchLimit {
		settings.Limit = v
	}
	if v := s.configStore.GetString(driven.ConfigKeyProvider); v != "" {
		p := domain.VisionProvider(strings.ToLower(v))
		if p.IsValid() {
			settings.Provider = p
		} else {
			logger.Warn("Ignoring unknown provider %q in %s", v, s.configStore.Path())
		}
	}
	settings.Model = s.configStore.GetString(driven.ConfigKeyModel)
	settings.PromptHint = s.configStore.GetString(driven.ConfigKeyPromptHint)
	if v := s.configStore.GetInt(driven.ConfigKeyMaxPages); v > 0 {
		settings.MaxPDFPages = v
	}

	return settings, nil
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("no config store: %w", domain.ErrInvalidInput)
	}

	var stored any
	switch key {
	case driven.ConfigKeyDB, driven.ConfigKeyModel, driven.ConfigKeyPromptHint:
		stored = value
	case driven.ConfigKeyTopK:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || n > domain.MaxSearchLimit {
			return fmt.Errorf("%s must be between 1 and %d: %w", key, domain.MaxSearchLimit, domain.ErrInvalidInput)
		}
		stored = n
	case driven.ConfigKeyMaxPages:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be zero or a positive integer: %w", key, domain.ErrInvalidInput)
		}
		stored = n
	case driven.ConfigKeyProvider:
		p := domain.VisionProvider(strings.ToLower(value))
		if !p.IsValid() {
			return fmt.Errorf("%q: %w", value, domain.ErrUnknownProvider)
		}
		stored = p.String()
	default:
		return fmt.Errorf("unknown key %q: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values returns every recognised key with its effective value.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		driven.ConfigKeyDB:         settings.DBPath,
		driven.ConfigKeyTopK:       strconv.Itoa(settings.Limit),
		driven.ConfigKeyProvider:   settings.Provider.String(),
		driven.ConfigKeyModel:      settings.EffectiveModel(),
		driven.ConfigKeyPromptHint: settings.PromptHint,
		driven.ConfigKeyMaxPages:   strconv.Itoa(settings.MaxPDFPages),
	}, nil
}

// Keys returns the recognised configuration keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Path returns the backing configuration file.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
