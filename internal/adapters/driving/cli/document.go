package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/connectors/filesystem"
	"github.com/custodia-labs/snapfind/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect indexed documents",
}

var documentContentCmd = &cobra.Command{
	Use:   "content [path]",
	Short: "Print the stored text of a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

func init() {
	addStoreFlags(documentContentCmd)
	documentCmd.AddCommand(documentContentCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	path, err := filesystem.ResolvePath(args[0])
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := store.DocumentStore().Get(cmd.Context(), path)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s is not indexed: %w", path, err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Path: %s\n", doc.Path)
	if !doc.IndexedAt.IsZero() {
		fmt.Fprintf(out, "Indexed: %s\n", doc.IndexedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, doc.Content)
	return nil
}
