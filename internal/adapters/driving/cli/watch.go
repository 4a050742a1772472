package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/connectors/filesystem"
	"github.com/custodia-labs/snapfind/internal/core/services"
	"github.com/custodia-labs/snapfind/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index current while reports change",
	Long: `Indexes --reports-dir once, then re-indexes each report as it is created or
written until interrupted. Deleted reports keep their records.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addReportsDirFlag(watchCmd)
	addStoreFlags(watchCmd)
	addIndexFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
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

	registry := newRegistry(settings.MaxPDFPages)
	indexer := services.NewIndexer(store.DocumentStore(), registry, fileConnector)
	report, err := indexer.Index(ctx, reportsDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "[INFO] Indexed/updated %d files -> %s\n", report.Indexed, store.Path())
	fmt.Fprintf(out, "[INFO] Watching %s (Ctrl+C to stop)\n", reportsDir)

	conn := filesystem.New(reportsDir, registry.Supports)
	defer conn.Close()

	return conn.Watch(ctx, func(path string) {
		indexed, err := indexer.IndexFile(ctx, path)
		switch {
		case err != nil:
			logger.Warn("Indexing failed for %v", err)
		case indexed:
			fmt.Fprintf(out, "[INFO] Re-indexed %s\n", path)
		default:
			logger.Debug("No text in %s", path)
		}
	})
}
