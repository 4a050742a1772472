package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

func TestConfigShowCmd_Defaults(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run(t, nil, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Config file: "+env.config)
	assert.Contains(t, out, "  db           ./reports_fts.db\n")
	assert.Contains(t, out, "  top_k        5\n")
	assert.Contains(t, out, "  provider     openai\n")
	assert.Contains(t, out, "  model        gpt-4o\n")
	assert.Contains(t, out, "  OPENAI_API_KEY: sk-t...7890\n")
	assert.NotContains(t, out, "sk-test-1234567890")
}

func TestConfigCmd_DefaultsToShow(t *testing.T) {
	env := setupTestServices(t)
	env.vars = map[string]string{}

	out, err := env.run(t, nil, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "OPENAI_API_KEY: (not set)")
}

func TestConfigSetCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := env.run(t, nil, "config", "set", "provider", "anthropic")
	require.NoError(t, err)
	assert.Equal(t, "provider = anthropic\n", out)

	_, err = env.run(t, nil, "config", "set", "prompt_hint", "robotics")
	require.NoError(t, err)

	out, err = env.run(t, nil, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "  provider     anthropic\n")
	assert.Contains(t, out, "  model        "+domain.DefaultAnthropicModel+"\n")
	assert.Contains(t, out, "  prompt_hint  robotics\n")
	assert.Contains(t, out, "ANTHROPIC_API_KEY: (not set)")
}

func TestConfigSetCmd_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  error
	}{
		{name: "unknown key", key: "colour", value: "blue", want: domain.ErrInvalidInput},
		{name: "non-numeric top_k", key: "top_k", value: "many", want: domain.ErrInvalidInput},
		{name: "zero top_k", key: "top_k", value: "0", want: domain.ErrInvalidInput},
		{name: "huge top_k", key: "top_k", value: "1099511627776", want: domain.ErrInvalidInput},
		{name: "negative max_pages", key: "max_pages", value: "-2", want: domain.ErrInvalidInput},
		{name: "unknown provider", key: "provider", value: "ollama", want: domain.ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServices(t)

			_, err := env.run(t, nil, "config", "set", tt.key, tt.value)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}
