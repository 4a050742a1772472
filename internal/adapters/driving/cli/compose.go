package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/core/services"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Print the query a vision model derives from an image",
	Args:  cobra.NoArgs,
	RunE:  runCompose,
}

func init() {
	addImageFlag(composeCmd)
	addVisionFlags(composeCmd)
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	imagePath, err := existingPath("Image", flagImage)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	vision, err := newVision(settings)
	if err != nil {
		return err
	}
	defer vision.Close()

	query, err := services.NewComposer(vision, promptStore).Compose(cmd.Context(), imagePath, settings.PromptHint)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), query)
	return nil
}
