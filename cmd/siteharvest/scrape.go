package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/siteharvest/siteharvest/internal/config"
	"github.com/siteharvest/siteharvest/internal/model"
	"github.com/siteharvest/siteharvest/internal/scraper"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Follow a paginated article listing and collect article records",
		Long: `Scrape walks a paginated article listing starting from the given URL.

Each listing page is scanned for article entries (a heading with a
link, an optional summary paragraph, and an optional publication date).
The walk follows the page's "next" link until the listing ends or a
page repeats. Articles seen on more than one page are recorded once.

Unlike crawl, a page that fails to fetch aborts the run: a broken
listing chain means the remaining pages are unreachable anyway.

Examples:
  # Scrape a blog listing and print records as CSV
  siteharvest scrape https://blog.example.org/articles

  # Write records to files
  siteharvest scrape --csv articles.csv --json articles.json https://blog.example.org/articles`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScrapeCmd,
	}

	addHarvestFlags(cmd)

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runScrape(ctx, cfg, logger)
}

// runScrape executes the scrape and outputs the collected records.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	site := siteConfigFor(cfg)

	logger.Info("starting scrape", "startURL", cfg.StartURL)

	client := newFetchClient(cfg, site)
	paginator := scraper.NewPaginator(client, cfg.StartURL,
		scraper.WithPaginatorLogger(logger),
	)

	startedAt := time.Now()
	records, err := paginator.Scrape(ctx, cfg.StartURL)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	elapsed := time.Since(startedAt)

	summary := &model.RunSummary{
		Kind:         model.RunKindScrape,
		StartURL:     cfg.StartURL,
		PagesVisited: paginator.Stats().PagesVisited,
		Records:      len(records),
		StartedAt:    startedAt,
		Duration:     elapsed,
	}

	fmt.Fprintf(os.Stderr, "Scrape completed in %s: %d pages visited, %d articles found\n",
		elapsed.Round(time.Millisecond), summary.PagesVisited, summary.Records)
	if len(records) == 0 {
		logger.Warn("no articles found", "startURL", cfg.StartURL)
	}

	writer, cleanup, err := buildWriters(cfg, summary)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := writer.WriteArticles(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if err := saveRun(ctx, cfg, summary, nil, records, logger); err != nil {
		logger.Warn("failed to save run to database", "error", err)
	}

	return nil
}
