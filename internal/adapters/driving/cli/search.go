package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/services"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find reports related to an image",
	Long: `Refreshes the full-text index from --reports-dir, asks the vision model for
a one-line query describing --image, and prints the top matching reports.

The API key for the provider (OPENAI_API_KEY or ANTHROPIC_API_KEY) must be set;
it is checked before the index is touched.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	addImageFlag(searchCmd)
	addReportsDirFlag(searchCmd)
	addStoreFlags(searchCmd)
	addSearchFlags(searchCmd)
	addVisionFlags(searchCmd)
	addIndexFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the --json form of a search run.
type searchOutput struct {
	Indexed int                `json:"indexed"`
	DB      string             `json:"db"`
	Query   string             `json:"query"`
	Results []domain.SearchHit `json:"results"`
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	imagePath, err := existingPath("Image", flagImage)
	if err != nil {
		return err
	}
	reportsDir, err := existingPath("Reports dir", flagReportsDir)
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

	store, err := openStore(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	indexer := services.NewIndexer(store.DocumentStore(), newRegistry(settings.MaxPDFPages), fileConnector)
	report, err := indexer.Index(ctx, reportsDir)
	if err != nil {
		return err
	}
	if !flagJSON {
		fmt.Fprintf(out, "[INFO] Indexed/updated %d files -> %s\n", report.Indexed, store.Path())
	}

	query, err := services.NewComposer(vision, promptStore).Compose(ctx, imagePath, settings.PromptHint)
	if err != nil {
		return err
	}
	if !flagJSON {
		fmt.Fprintf(out, "[INFO] Model query: %s\n", query)
	}

	hits, err := services.NewSearchService(store.SearchEngine()).
		Search(ctx, query, domain.SearchOptions{Limit: settings.Limit})
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(out, searchOutput{
			Indexed: report.Indexed,
			DB:      store.Path(),
			Query:   query,
			Results: hits,
		})
	}
	printHits(out, hits)
	return nil
}

func printHits(out io.Writer, hits []domain.SearchHit) {
	if len(hits) == 0 {
		fmt.Fprintln(out, "[RESULT] No related reports found.")
		return
	}

	fmt.Fprintln(out, "\n[RESULT] Top matches:")
	for i, hit := range hits {
		fmt.Fprintf(out, "%d. %s\n", i+1, hit.Path)
		fmt.Fprintf(out, "   snippet: %s\n\n", hit.Snippet)
	}
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
