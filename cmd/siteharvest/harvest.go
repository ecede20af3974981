package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siteharvest/siteharvest/internal/config"
	"github.com/siteharvest/siteharvest/internal/database"
	"github.com/siteharvest/siteharvest/internal/export"
	"github.com/siteharvest/siteharvest/internal/fetch"
	"github.com/siteharvest/siteharvest/internal/log"
	"github.com/siteharvest/siteharvest/internal/model"
)

// addHarvestFlags registers the flags shared by the crawl and scrape
// commands.
func addHarvestFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .siteharvest in current or home directory)")

	// Output flags
	cmd.Flags().String("csv", "", "Write records to the specified CSV file")
	cmd.Flags().String("json", "", "Write records to the specified JSON file")
	cmd.Flags().String("markdown", "", "Write a Markdown report to the specified file")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the
// positional start URL.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.CSVFile, err = cmd.Flags().GetString("csv")
	if err != nil {
		return nil, err
	}

	cfg.JSONFile, err = cmd.Flags().GetString("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownFile, err = cmd.Flags().GetString("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Crawl-only flags; scrape does not register them.
	if cmd.Flags().Lookup("max-pages") != nil {
		cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("delay") != nil {
		cfg.Delay, err = cmd.Flags().GetDuration("delay")
		if err != nil {
			return nil, err
		}
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	// Always save to database using XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	if len(args) > 0 {
		cfg.StartURL = args[0]
	}

	return cfg, nil
}

// siteConfigFor returns the merged site configuration for the start
// URL's host, and applies its overrides to the config.
func siteConfigFor(cfg *config.Config) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}

	host := ""
	if u, err := url.Parse(cfg.StartURL); err == nil {
		host = u.Hostname()
	}

	site := cfg.SiteConfigs.GetSiteConfig(host)

	if site.UserAgent != "" {
		cfg.UserAgent = site.UserAgent
	}
	if site.Delay != 0 {
		cfg.Delay = site.Delay
	}
	if site.MaxPages != 0 {
		cfg.MaxPages = site.MaxPages
	}

	return site
}

// newFetchClient builds an HTTP client from the resolved configuration.
func newFetchClient(cfg *config.Config, site config.SiteConfig) *fetch.Client {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	}
	if len(site.Headers) > 0 {
		opts = append(opts, fetch.WithHeaders(site.Headers))
	}
	return fetch.NewClient(opts...)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// openOutputFile creates the file at path, making parent directories as
// needed. The caller must close the returned file.
func openOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644) //nolint:gosec // harvest output is not sensitive
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// buildWriters assembles the export writers requested by the config.
// When no file output is configured, records go to stdout as CSV.
// The returned cleanup closes every opened file.
func buildWriters(cfg *config.Config, summary *model.RunSummary) (export.Writer, func(), error) {
	var writers []export.Writer
	var files []*os.File

	cleanup := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	if cfg.CSVFile != "" {
		f, err := openOutputFile(cfg.CSVFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		files = append(files, f)
		writers = append(writers, export.NewCSVWriter(f))
	}

	if cfg.JSONFile != "" {
		f, err := openOutputFile(cfg.JSONFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		files = append(files, f)
		writers = append(writers, export.NewJSONWriter(f))
	}

	if cfg.MarkdownFile != "" {
		f, err := openOutputFile(cfg.MarkdownFile)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		files = append(files, f)
		writers = append(writers, export.NewMarkdownWriter(f, export.WithRunSummary(summary)))
	}

	if len(writers) == 0 {
		writers = append(writers, export.NewCSVWriter(os.Stdout))
	}

	return export.NewMultiWriter(writers...), cleanup, nil
}

// saveRun persists the run summary and its records to the database.
// If opening the database fails, the run results are still on disk or
// stdout, so the caller treats this as a warning rather than a failure.
func saveRun(ctx context.Context, cfg *config.Config, summary *model.RunSummary, resources []model.Resource, articles []model.Article, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if len(resources) > 0 {
		if err := db.SaveResources(ctx, runID, resources); err != nil {
			return fmt.Errorf("failed to save resources: %w", err)
		}
	}
	if len(articles) > 0 {
		if err := db.SaveArticles(ctx, runID, articles); err != nil {
			return fmt.Errorf("failed to save articles: %w", err)
		}
	}

	logger.Info("run saved to database", "runID", runID, "dir", cfg.DBDir)
	return nil
}
