package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage default settings",
	Long: `View and change the defaults stored in the config file.
Command line flags always take precedence over these values.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a default",
	Long: `Set a default value. Keys:
  db           SQLite full-text store path
  top_k        number of results to return
  provider     vision provider (openai, anthropic)
  model        vision model
  prompt_hint  domain hint appended to the instruction
  max_pages    PDF page cutoff (0 = all pages)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n\n", settingsService.Path())
	for _, key := range settingsService.Keys() {
		fmt.Fprintf(out, "  %-12s %s\n", key, values[key])
	}

	env := settings.Provider.CredentialEnv()
	key := getenv(env)
	if key == "" {
		fmt.Fprintf(out, "\n  %s: (not set)\n", env)
	} else {
		fmt.Fprintf(out, "\n  %s: %s\n", env, maskAPIKey(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrUnknownProvider) {
			return err
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
	return nil
}

// maskAPIKey masks an API key for display, showing only first and last 4 characters.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
