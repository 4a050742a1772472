package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusRuns int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index size and recent indexing runs",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	addStoreFlags(statusCmd)
	statusCmd.Flags().IntVar(&statusRuns, "runs", 5, "number of recent runs to list")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	docs := store.DocumentStore()
	count, err := docs.Count(ctx)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	runs, err := docs.RecentRuns(ctx, statusRuns)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Store: %s\n", store.Path())
	fmt.Fprintf(out, "Documents: %d\n", count)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No indexing runs recorded.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent runs:")
	for _, r := range runs {
		fmt.Fprintf(out, "  %s  %s  indexed=%d skipped=%d failed=%d  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.RunID[:min(8, len(r.RunID))],
			r.Indexed, r.Skipped, r.Failed,
			r.Root)
	}
	return nil
}
