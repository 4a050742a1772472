package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/snapfind/internal/core/domain"
	"github.com/custodia-labs/snapfind/internal/core/services"
)

var queryCmd = &cobra.Command{
	Use:   "query [fts5 query]",
	Short: "Search the index with a typed query",
	Long: `Runs a full-text query against the existing index without calling a model.
The query uses SQLite FTS5 syntax, e.g. 'TSMC AND capex' or '"wafer yield"'.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	addStoreFlags(queryCmd)
	addSearchFlags(queryCmd)
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := services.NewSearchService(store.SearchEngine()).
		Search(cmd.Context(), args[0], domain.SearchOptions{Limit: settings.Limit})
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), hits)
	}
	printHits(cmd.OutOrStdout(), hits)
	return nil
}
