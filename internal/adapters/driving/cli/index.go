package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/core/services"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index a folder of reports",
	Long: `Walks --reports-dir and stores the text of every .txt, .md and .pdf file in
the full-text store. Existing records for the same path are replaced.
Files that cannot be read or parsed are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	addReportsDirFlag(indexCmd)
	addStoreFlags(indexCmd)
	addIndexFlags(indexCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	reportsDir, err := existingPath("Reports dir", flagReportsDir)
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

	indexer := services.NewIndexer(store.DocumentStore(), newRegistry(settings.MaxPDFPages), fileConnector)
	report, err := indexer.Index(cmd.Context(), reportsDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "[INFO] Indexed/updated %d files -> %s\n", report.Indexed, store.Path())
	if report.Skipped > 0 || report.Failed() > 0 {
		fmt.Fprintf(out, "[INFO] Skipped %d empty, %d failed (run %s)\n",
			report.Skipped, report.Failed(), report.RunID)
	}
	return nil
}
