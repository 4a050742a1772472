// Package ai provides factory functions for creating vision service adapters.
package ai

import (
	"fmt"
	"strings"

	anthropicvision "github.com/custodia-labs/snapfind/internal/adapters/driven/vision/anthropic"
	openaivision "github.com/custodia-labs/snapfind/internal/adapters/driven/vision/openai"
	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

// Environment variables read besides the provider credential.
const (
	EnvOpenAIBaseURL    = "OPENAI_BASE_URL"
	EnvAnthropicBaseURL = "ANTHROPIC_BASE_URL"
)

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// CheckCredential verifies the provider's API key is set without building
// a client. It returns an error wrapping domain.ErrMissingCredential that
// names the variable to export.
func CheckCredential(provider domain.VisionProvider, getenv Getenv) (string, error) {
	if !provider.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownProvider, provider)
	}
	env := provider.CredentialEnv()
	key := strings.TrimSpace(getenv(env))
	if key == "" {
		return "", fmt.Errorf("%w: %s is not set. Please: export %s='your_key'",
			domain.ErrMissingCredential, env, env)
	}
	return key, nil
}

// CreateVisionService builds the vision service selected by settings.
func CreateVisionService(settings domain.Settings, getenv Getenv) (driven.VisionService, error) {
	key, err := CheckCredential(settings.Provider, getenv)
	if err != nil {
		return nil, err
	}

	switch settings.Provider {
	case domain.VisionProviderOpenAI:
		return openaivision.NewVisionService(openaivision.Config{
			APIKey:  key,
			BaseURL: getenv(EnvOpenAIBaseURL),
			Model:   settings.EffectiveModel(),
		})
	case domain.VisionProviderAnthropic:
		return anthropicvision.NewVisionService(anthropicvision.Config{
			APIKey:  key,
			BaseURL: getenv(EnvAnthropicBaseURL),
			Model:   settings.EffectiveModel(),
		})
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, settings.Provider)
	}
}
