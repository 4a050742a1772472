package driving

import "github.com/custodia-labs/snapfind/internal/core/domain"

// SettingsService resolves and persists configuration values.
type SettingsService interface {
	// Get returns the configured settings layered over the built-in defaults.
	Get() (domain.Settings, error)

	// Set validates and persists one configuration key.
	Set(key, value string) error

	// Values returns every recognised key with its effective value.
	Values() (map[string]string, error)

	// Keys returns the recognised keys in display order.
	Keys() []string

	// Path returns the backing configuration file.
	Path() string
}
