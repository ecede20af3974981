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

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Crawl a site breadth-first and collect downloadable resources",
		Long: `Crawl walks a website breadth-first starting from the given URL.

Every internal page is scanned for links to downloadable files (PDF,
Office documents, archives, audio, video) and for pages whose link text
suggests downloadable content (download, handout, worksheet, ...).
Each finding becomes one record with the page it was found on, the
resource address, its type, and a short description taken from the
surrounding text.

Examples:
  # Crawl a site and print records as CSV
  siteharvest crawl https://www.example.org/

  # Limit the crawl and slow down between requests
  siteharvest crawl --max-pages 50 --delay 2s https://www.example.org/

  # Write records to files
  siteharvest crawl --csv out/resources.csv --json out/resources.json https://www.example.org/

  # Write a Markdown report
  siteharvest crawl --markdown report.md https://www.example.org/

Configuration file (.siteharvest) example:
  sites:
    www.example.org:
      delay: 2s
      maxPages: 50
      extraKeywords:
        - toolkit
      extraExtensions:
        - epub`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to visit")
	cmd.Flags().DurationP("delay", "d", config.DefaultDelay,
		"Pause between requests")

	addHarvestFlags(cmd)

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
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

	return runCrawl(ctx, cfg, logger)
}

// runCrawl executes the crawl and outputs the collected records.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	site := siteConfigFor(cfg)

	logger.Info("starting crawl",
		"startURL", cfg.StartURL,
		"maxPages", cfg.MaxPages,
		"delay", cfg.Delay,
	)

	client := newFetchClient(cfg, site)

	spiderOpts := []scraper.SpiderOption{
		scraper.WithMaxPages(cfg.MaxPages),
		scraper.WithDelay(cfg.Delay),
		scraper.WithSpiderLogger(logger),
	}
	var extractorOpts []scraper.ResourceOption
	if len(site.ExtraExtensions) > 0 {
		extractorOpts = append(extractorOpts, scraper.WithExtraExtensions(site.ExtraExtensions))
	}
	if len(site.ExtraKeywords) > 0 {
		extractorOpts = append(extractorOpts, scraper.WithExtraKeywords(site.ExtraKeywords))
	}
	if len(extractorOpts) > 0 {
		spiderOpts = append(spiderOpts, scraper.WithExtractorOptions(extractorOpts...))
	}

	spider := scraper.NewSpider(client, cfg.StartURL, spiderOpts...)

	startedAt := time.Now()
	records, err := spider.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	elapsed := time.Since(startedAt)

	summary := &model.RunSummary{
		Kind:         model.RunKindCrawl,
		StartURL:     cfg.StartURL,
		PagesVisited: spider.Stats().PagesVisited,
		Records:      len(records),
		StartedAt:    startedAt,
		Duration:     elapsed,
	}

	fmt.Fprintf(os.Stderr, "Crawl completed in %s: %d pages visited, %d resources found\n",
		elapsed.Round(time.Millisecond), summary.PagesVisited, summary.Records)
	if len(records) == 0 {
		logger.Warn("no resources found", "startURL", cfg.StartURL)
	}

	writer, cleanup, err := buildWriters(cfg, summary)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := writer.WriteResources(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if err := saveRun(ctx, cfg, summary, records, nil, logger); err != nil {
		logger.Warn("failed to save run to database", "error", err)
	}

	return nil
}
