// Package file provides file-backed configuration adapters.
//
// ConfigStore reads and writes ~/.snapfind/config.toml using
// github.com/pelletier/go-toml/v2. PromptStore serves user-editable prompt
// templates from ~/.snapfind/prompts with embedded defaults.
package file
