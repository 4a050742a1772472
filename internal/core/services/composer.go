package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
	"github.com/custodia-labs/snapfind/internal/core/ports/driving"
	"github.com/custodia-labs/snapfind/internal/logger"
)

// Ensure Composer implements the interface.
var _ driving.QueryComposer = (*Composer)(nil)

// composeMaxTokens bounds the model reply; a query is one short line.
const composeMaxTokens = 256

// Composer asks a vision model for a one-line full-text query describing an image.
type Composer struct {
	vision  driven.VisionService
	prompts driven.PromptStore

	readFile func(string) ([]byte, error)
}

// NewComposer creates a query composer. prompts may be nil, in which case
// the built-in instruction is used.
func NewComposer(vision driven.VisionService, prompts driven.PromptStore) *Composer {
	return &Composer{
		vision:   vision,
		prompts:  prompts,
		readFile: os.ReadFile,
	}
}

// Compose makes exactly one model call. Failures are returned, never retried.
func (c *Composer) Compose(ctx context.Context, imagePath, hint string) (string, error) {
	logger.Section("Query Composition")

	data, err := c.readFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	image := domain.NewImage(imagePath, data)
	logger.Debug("Image %s (%s, %d bytes)", imagePath, image.MIMEType, len(data))

	instruction := c.instruction()
	if hint != "" {
		instruction += "\nContext hint: " + hint
	}

	logger.Debug("Calling %s", c.vision.ModelName())
	reply, err := c.vision.Describe(ctx, driven.VisionRequest{
		Instruction: instruction,
		Image:       image,
		MaxTokens:   composeMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("compose query: %w", err)
	}

	query := firstLine(reply)
	if query == "" {
		return "", domain.ErrEmptyQuery
	}
	logger.Debug("Composed query: %q", query)
	return query, nil
}

func (c *Composer) instruction() string {
	if c.prompts == nil {
		return driven.DefaultComposeQueryPrompt
	}
	prompt, err := c.prompts.Load(driven.PromptComposeQuery)
	if err != nil || strings.TrimSpace(prompt) == "" {
		if err != nil {
			logger.Warn("Using built-in prompt: %v", err)
		}
		return driven.DefaultComposeQueryPrompt
	}
	return prompt
}

// firstLine returns the first non-blank line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
