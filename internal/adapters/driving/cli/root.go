// Package cli implements the snapfind command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/snapfind/internal/adapters/driven/ai"
	"github.com/custodia-labs/snapfind/internal/adapters/driven/config/file"
	"github.com/custodia-labs/snapfind/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/snapfind/internal/connectors/filesystem"
	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/ports/driven"
	"github.com/custodia-labs/snapfind/internal/core/ports/driving"
	"github.com/custodia-labs/snapfind/internal/core/services"
	"github.com/custodia-labs/snapfind/internal/extractors"
	"github.com/custodia-labs/snapfind/internal/extractors/pdf"
	"github.com/custodia-labs/snapfind/internal/extractors/text"
	"github.com/custodia-labs/snapfind/internal/logger"
)

var (
	version    = "dev"
	verbose    bool
	configPath string

	settingsService driving.SettingsService
	promptStore     driven.PromptStore

	getenv    = os.Getenv
	newVision = func(settings domain.Settings) (driven.VisionService, error) {
		return ai.CreateVisionService(settings, getenv)
	}
)

var rootCmd = &cobra.Command{
	Use:   "snapfind",
	Short: "Find reports related to an image",
	Long: `snapfind indexes a folder of reports (.txt, .md, .pdf) into a local SQLite
full-text store, asks a vision model to turn an image into a keyword query,
and prints the best matching reports with highlighted snippets.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.snapfind/config.toml)")
	rootCmd.SetGlobalNormalizationFunc(dashedFlags)
}

// dashedFlags lets --reports_dir and --reports-dir name the same flag.
func dashedFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command until it finishes or the process is interrupted.
// Errors are printed to stderr; use ExitCode to map them to a status.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.Error("%s", errorMessage(err))
	}
	return err
}

func errorMessage(err error) string {
	if errors.Is(err, domain.ErrEmptyQuery) {
		return "Model returned empty query."
	}
	return err.Error()
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return err
	}
	settingsService = services.NewSettingsService(configStore)

	prompts, err := file.NewPromptStore(filepath.Join(filepath.Dir(configStore.Path()), "prompts"))
	if err != nil {
		return err
	}
	promptStore = prompts
	return nil
}

// textStore is the slice of the SQLite store the commands use.
type textStore interface {
	DocumentStore() driven.DocumentStore
	SearchEngine() driven.SearchEngine
	Path() string
	Close() error
}

func openStore(path string) (textStore, error) {
	abs, err := filesystem.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.NewStore(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	return store, nil
}

func newRegistry(maxPages int) *extractors.Registry {
	return extractors.NewRegistry(text.New(), pdf.New(maxPages))
}

func fileConnector(root string, supports func(string) bool) driven.Connector {
	return filesystem.New(root, supports)
}

// existingPath resolves path and checks it exists.
func existingPath(kind, path string) (string, error) {
	abs, err := filesystem.ResolvePath(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("%s not found: %s", kind, abs)
	}
	return abs, nil
}
