package driven

import (
	"context"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// VisionService sends one image and an instruction to a vision-capable model.
//
// Implementations include:
//   - OpenAI (chat completions with image_url parts)
//   - Anthropic (messages with base64 image blocks)
type VisionService interface {
	// Describe performs a single round trip and returns the raw model text.
	// Transport and authentication failures are returned, never retried.
	Describe(ctx context.Context, req VisionRequest) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// VisionRequest is the payload of one vision call.
type VisionRequest struct {
	// Instruction is the text prompt, including any appended hint.
	Instruction string

	// Image is embedded in the request.
	Image domain.Image

	// MaxTokens bounds the response length (0 = provider default).
	MaxTokens int
}
