package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siteharvest/siteharvest/internal/config"
)

// TestBuildConfig tests flag parsing into the runtime configuration.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults from crawl command", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://www.example.org/"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		if cfg.StartURL != "https://www.example.org/" {
			t.Errorf("StartURL = %q", cfg.StartURL)
		}
		if cfg.MaxPages != config.DefaultMaxPages {
			t.Errorf("MaxPages = %d, want %d", cfg.MaxPages, config.DefaultMaxPages)
		}
		if cfg.Delay != config.DefaultDelay {
			t.Errorf("Delay = %v, want %v", cfg.Delay, config.DefaultDelay)
		}
		if cfg.Timeout != config.DefaultTimeout {
			t.Errorf("Timeout = %v, want %v", cfg.Timeout, config.DefaultTimeout)
		}
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB enabled by default")
		}
		if cfg.SiteConfigs == nil {
			t.Error("expected SiteConfigs initialized")
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		args := []string{
			"--max-pages", "10",
			"--delay", "2s",
			"--timeout", "5s",
			"--user-agent", "test-agent",
			"--csv", "out.csv",
			"--json", "out.json",
			"--markdown", "out.md",
		}
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://www.example.org/"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		if cfg.MaxPages != 10 {
			t.Errorf("MaxPages = %d, want 10", cfg.MaxPages)
		}
		if cfg.Delay != 2*time.Second {
			t.Errorf("Delay = %v, want 2s", cfg.Delay)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
		}
		if cfg.UserAgent != "test-agent" {
			t.Errorf("UserAgent = %q", cfg.UserAgent)
		}
		if cfg.CSVFile != "out.csv" || cfg.JSONFile != "out.json" || cfg.MarkdownFile != "out.md" {
			t.Errorf("output files = %q %q %q", cfg.CSVFile, cfg.JSONFile, cfg.MarkdownFile)
		}
	})

	t.Run("scrape command has no crawl flags", func(t *testing.T) {
		t.Parallel()

		cmd := NewScrapeCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://blog.example.org/"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}

		// Crawl-only flags fall back to config defaults.
		if cfg.MaxPages != config.DefaultMaxPages {
			t.Errorf("MaxPages = %d, want default", cfg.MaxPages)
		}
		if cfg.Delay != config.DefaultDelay {
			t.Errorf("Delay = %v, want default", cfg.Delay)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewCrawlCmd()
		missing := filepath.Join(t.TempDir(), "missing.yml")
		if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		if _, err := buildConfig(cmd, []string{"https://www.example.org/"}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("explicit config file is loaded", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "harvest.yml")
		content := "sites:\n  www.example.org:\n    maxPages: 7\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cmd := NewCrawlCmd()
		if err := cmd.ParseFlags([]string{"--config", path}); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		cfg, err := buildConfig(cmd, []string{"https://www.example.org/"})
		if err != nil {
			t.Fatalf("buildConfig failed: %v", err)
		}
		if got := cfg.SiteConfigs.GetSiteConfig("www.example.org").MaxPages; got != 7 {
			t.Errorf("site MaxPages = %d, want 7", got)
		}
	})
}

// TestSiteConfigFor tests per-site overrides being applied to the config.
func TestSiteConfigFor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.StartURL = "https://www.example.org/library"
	cfg.SiteConfigs = &config.File{
		Sites: map[string]config.SiteConfig{
			"www.example.org": {
				UserAgent:     "site-agent",
				Delay:         3 * time.Second,
				MaxPages:      42,
				ExtraKeywords: []string{"toolkit"},
			},
		},
	}

	site := siteConfigFor(cfg)

	if cfg.UserAgent != "site-agent" {
		t.Errorf("UserAgent = %q, want site override", cfg.UserAgent)
	}
	if cfg.Delay != 3*time.Second {
		t.Errorf("Delay = %v, want site override", cfg.Delay)
	}
	if cfg.MaxPages != 42 {
		t.Errorf("MaxPages = %d, want site override", cfg.MaxPages)
	}
	if len(site.ExtraKeywords) != 1 || site.ExtraKeywords[0] != "toolkit" {
		t.Errorf("ExtraKeywords = %v", site.ExtraKeywords)
	}
}

// TestOpenOutputFile tests output file creation with directories.
func TestOpenOutputFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "records.csv")

	f, err := openOutputFile(path)
	if err != nil {
		t.Fatalf("openOutputFile failed: %v", err)
	}
	if _, err := f.WriteString("header\n"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	data, err := os.ReadFile(path) //nolint:gosec // test-owned path
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if !strings.Contains(string(data), "header") {
		t.Errorf("unexpected content: %q", string(data))
	}
}
