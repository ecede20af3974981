package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/siteharvest/siteharvest/internal/config"
	"github.com/siteharvest/siteharvest/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past harvest runs",
		Long: `History lists past crawl and scrape runs stored in the local database.

Runs are listed most recent first with their kind, start URL, page and
record counts, and duration.

Examples:
  # List the last 20 runs
  siteharvest history

  # List all runs
  siteharvest history --limit 0`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().String("db-dir", "", "Database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// The history command never creates a database: an empty history is
	// reported instead.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No harvest runs recorded yet.")
		return nil
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No harvest runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d  %s  %-6s  %s  pages=%d records=%d  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Kind,
			run.StartURL,
			run.PagesVisited,
			run.Records,
			run.Duration.Round(time.Millisecond),
		)
	}

	return nil
}
