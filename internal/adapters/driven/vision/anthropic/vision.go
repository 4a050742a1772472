// Package anthropic provides a vision service adapter using the Anthropic
// Messages API through the official Go SDK.
package anthropic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
)

// Ensure VisionService implements the interface.
var _ driven.VisionService = (*VisionService)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 1024
)

// supportedMedia lists the image types the Messages API accepts.
var supportedMedia = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Config holds configuration for the Anthropic vision service.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL overrides the API endpoint (default: SDK default).
	BaseURL string

	// Model is the vision model to use (default: claude-sonnet-4-20250514).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// VisionService sends images to Claude models.
type VisionService struct {
	client anthropic.Client
	model  string
}

// NewVisionService creates a new Anthropic vision service.
// SDK retries are disabled; a failed call is reported as is.
func NewVisionService(cfg Config) (*VisionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: %w", domain.ErrMissingCredential)
	}
	if cfg.Model == "" {
		cfg.Model = domain.DefaultAnthropicModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &VisionService{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Describe sends the instruction and a base64 image block in one user message.
func (s *VisionService) Describe(ctx context.Context, req driven.VisionRequest) (string, error) {
	if !supportedMedia[req.Image.MIMEType] {
		return "", fmt.Errorf("anthropic: %w: %s", domain.ErrUnsupportedType, req.Image.MIMEType)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(req.Instruction),
				anthropic.NewImageBlockBase64(req.Image.MIMEType, req.Image.Base64()),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var reply strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}
	return reply.String(), nil
}

// ModelName returns the name of the vision model being used.
func (s *VisionService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *VisionService) Close() error {
	return nil
}
