package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

// Flag values shared by the commands that accept them.
var (
	flagImage      string
	flagReportsDir string
	flagDB         string
	flagTopK       int
	flagModel      string
	flagProvider   string
	flagPromptHint string
	flagMaxPages   int
	flagJSON       bool
)

func addImageFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagImage, "image", "", "image to describe (.jpg, .png, .webp, .gif, .bmp)")
	_ = cmd.MarkFlagRequired("image")
}

func addReportsDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagReportsDir, "reports-dir", "", "folder of reports (.txt, .md, .pdf with a text layer)")
	_ = cmd.MarkFlagRequired("reports-dir")
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDB, "db", domain.DefaultDBPath, "SQLite full-text store")
}

func addIndexFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagMaxPages, "max-pages", 0, "read at most this many pages per PDF (0 = all)")
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagTopK, "top-k", domain.DefaultSearchLimit, "number of results to return")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
}

func addVisionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", string(domain.DefaultProvider), "vision provider (openai, anthropic)")
	cmd.Flags().StringVar(&flagModel, "model", "", "vision model (default gpt-4o for openai)")
	cmd.Flags().StringVar(&flagPromptHint, "prompt-hint", "", "optional domain hint (e.g. finance, robotics)")
}

// resolveSettings layers explicitly set flags over the config file.
func resolveSettings(cmd *cobra.Command) (domain.Settings, error) {
	if settingsService == nil {
		return domain.Settings{}, errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		settings.DBPath = flagDB
	}
	if flags.Changed("top-k") {
		if flagTopK > domain.MaxSearchLimit {
			return domain.Settings{}, fmt.Errorf("--top-k must not exceed %d: %w", domain.MaxSearchLimit, domain.ErrInvalidInput)
		}
		settings.Limit = flagTopK
	}
	if flags.Changed("provider") {
		p := domain.VisionProvider(strings.ToLower(flagProvider))
		if !p.IsValid() {
			return domain.Settings{}, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, flagProvider)
		}
		if p != settings.Provider {
			settings.Model = ""
		}
		settings.Provider = p
	}
	if flags.Changed("model") {
		settings.Model = flagModel
	}
	if flags.Changed("prompt-hint") {
		settings.PromptHint = flagPromptHint
	}
	if flags.Changed("max-pages") {
		if flagMaxPages < 0 {
			return domain.Settings{}, fmt.Errorf("--max-pages must not be negative: %w", domain.ErrInvalidInput)
		}
		settings.MaxPDFPages = flagMaxPages
	}
	return settings, nil
}
