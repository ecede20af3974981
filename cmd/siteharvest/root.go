// Package main provides the entry point for the siteharvest CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for siteharvest.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siteharvest",
		Short: "Extract structured records from websites",
		Long: `siteharvest extracts structured records from websites.

The crawl command walks a site breadth-first and collects downloadable
resources (PDFs, audio, archives) plus pages whose link text suggests
downloadable content. The scrape command follows a paginated article
listing and collects one record per article.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
