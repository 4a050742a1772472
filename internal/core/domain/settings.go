package domain

// Built-in defaults, overridden by the config file and then by flags.
const (
	DefaultDBPath         = "./reports_fts.db"
	DefaultModel          = "gpt-4o"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultProvider       = VisionProviderOpenAI
)

// VisionProvider identifies a vision-capable model service.
type VisionProvider string

// Available vision providers.
const (
	// VisionProviderOpenAI is the OpenAI chat completions API.
	VisionProviderOpenAI VisionProvider = "openai"

	// VisionProviderAnthropic is the Anthropic messages API.
	VisionProviderAnthropic VisionProvider = "anthropic"
)

// IsValid returns true if the provider is recognised.
func (p VisionProvider) IsValid() bool {
	switch p {
	case VisionProviderOpenAI, VisionProviderAnthropic:
		return true
	default:
		return false
	}
}

// CredentialEnv returns the environment variable holding the provider's API key.
func (p VisionProvider) CredentialEnv() string {
	switch p {
	case VisionProviderOpenAI:
		return "OPENAI_API_KEY"
	case VisionProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// DefaultModel returns the model used when none is configured.
func (p VisionProvider) DefaultModel() string {
	if p == VisionProviderAnthropic {
		return DefaultAnthropicModel
	}
	return DefaultModel
}

// String returns the string representation.
func (p VisionProvider) String() string {
	return string(p)
}

// Settings holds the effective configuration for a command.
type Settings struct {
	// DBPath is the SQLite full-text store file.
	DBPath string

	// Limit is the maximum number of search hits.
	Limit int

	// Provider selects the vision service.
	Provider VisionProvider

	// Model is the vision model identifier. Empty means the provider default.
	Model string

	// PromptHint is optional free text appended to the instruction.
	PromptHint string

	// MaxPDFPages stops PDF extraction after this many pages (0 = all).
	MaxPDFPages int
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		DBPath:   DefaultDBPath,
		Limit:    DefaultSearchLimit,
		Provider: DefaultProvider,
	}
}

// EffectiveModel returns Model, or the provider default when unset.
func (s Settings) EffectiveModel() string {
	if s.Model != "" {
		return s.Model
	}
	return s.Provider.DefaultModel()
}
