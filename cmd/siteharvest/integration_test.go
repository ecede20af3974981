package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/siteharvest/siteharvest/internal/config"
	"github.com/siteharvest/siteharvest/internal/log"
)

// newCrawlTestServer serves a two-page site with one PDF link per page.
func newCrawlTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `<html><head><title>Home</title></head><body>
			<p>Grab the <a href="/files/guide.pdf">study guide</a>.</p>
			<a href="/library">Library</a>
		</body></html>`)
	})
	mux.HandleFunc("/library", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><head><title>Library</title></head><body>
			<li>Listen to the <a href="/media/talk.mp3">talk</a>.</li>
		</body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newScrapeTestServer serves a two-page paginated article listing.
func newScrapeTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/articles", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body>
			<article><h2><a href="/posts/alpha">Alpha</a></h2><p>First post.</p></article>
			<a rel="next" href="/articles/page/2">Next</a>
		</body></html>`)
	})
	mux.HandleFunc("/articles/page/2", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body>
			<article><h2><a href="/posts/beta">Beta</a></h2></article>
		</body></html>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestConfig returns a config pointing all persistent state at
// temporary directories.
func newTestConfig(t *testing.T, startURL string) *config.Config {
	t.Helper()

	cfg := config.NewConfig()
	cfg.StartURL = startURL
	cfg.Delay = 0
	cfg.SaveToDB = true
	cfg.DBDir = t.TempDir()
	cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	return cfg
}

// TestRunCrawlEndToEnd tests the crawl flow from fetch to export and
// database persistence.
func TestRunCrawlEndToEnd(t *testing.T) {
	t.Parallel()

	srv := newCrawlTestServer(t)

	outDir := t.TempDir()
	cfg := newTestConfig(t, srv.URL+"/")
	cfg.CSVFile = filepath.Join(outDir, "resources.csv")
	cfg.JSONFile = filepath.Join(outDir, "resources.json")
	cfg.MarkdownFile = filepath.Join(outDir, "report.md")

	var logBuf bytes.Buffer
	logger := log.NewLogger(&logBuf, true)

	if err := runCrawl(context.Background(), cfg, logger); err != nil {
		t.Fatalf("runCrawl failed: %v", err)
	}

	csvData, err := os.ReadFile(cfg.CSVFile)
	if err != nil {
		t.Fatalf("failed to read CSV output: %v", err)
	}
	csvText := string(csvData)
	if !strings.HasPrefix(csvText, "page_url,page_title,resource_url,resource_title,resource_type,description") {
		t.Errorf("unexpected CSV header: %q", csvText)
	}
	if !strings.Contains(csvText, "guide.pdf") || !strings.Contains(csvText, "talk.mp3") {
		t.Errorf("expected both resources in CSV, got:\n%s", csvText)
	}

	jsonData, err := os.ReadFile(cfg.JSONFile)
	if err != nil {
		t.Fatalf("failed to read JSON output: %v", err)
	}
	if !strings.Contains(string(jsonData), `"resource_type": "pdf"`) {
		t.Errorf("expected pdf record in JSON, got:\n%s", string(jsonData))
	}

	mdData, err := os.ReadFile(cfg.MarkdownFile)
	if err != nil {
		t.Fatalf("failed to read Markdown output: %v", err)
	}
	if !strings.Contains(string(mdData), "# Harvested Resources") {
		t.Errorf("expected Markdown report heading, got:\n%s", string(mdData))
	}
	if !strings.Contains(string(mdData), "Pages Visited") {
		t.Errorf("expected run summary in Markdown, got:\n%s", string(mdData))
	}

	// The run lands in the database used by the history command.
	var histBuf bytes.Buffer
	histCmd := NewHistoryCmd()
	histCmd.SetOut(&histBuf)
	histCmd.SetArgs([]string{"--db-dir", cfg.DBDir})
	if err := histCmd.Execute(); err != nil {
		t.Fatalf("history command failed: %v", err)
	}
	if !strings.Contains(histBuf.String(), "crawl") {
		t.Errorf("expected crawl run in history, got %q", histBuf.String())
	}
	if !strings.Contains(histBuf.String(), "pages=2") {
		t.Errorf("expected page count in history, got %q", histBuf.String())
	}
}

// TestRunScrapeEndToEnd tests the scrape flow from fetch to export.
func TestRunScrapeEndToEnd(t *testing.T) {
	t.Parallel()

	srv := newScrapeTestServer(t)

	outDir := t.TempDir()
	cfg := newTestConfig(t, srv.URL+"/articles")
	cfg.CSVFile = filepath.Join(outDir, "articles.csv")

	var logBuf bytes.Buffer
	logger := log.NewLogger(&logBuf, true)

	if err := runScrape(context.Background(), cfg, logger); err != nil {
		t.Fatalf("runScrape failed: %v", err)
	}

	csvData, err := os.ReadFile(cfg.CSVFile)
	if err != nil {
		t.Fatalf("failed to read CSV output: %v", err)
	}
	csvText := string(csvData)
	if !strings.HasPrefix(csvText, "title,url,summary,published") {
		t.Errorf("unexpected CSV header: %q", csvText)
	}
	if !strings.Contains(csvText, "Alpha") {
		t.Errorf("expected article in CSV, got:\n%s", csvText)
	}
}

// TestRunScrapeBrokenChain tests that a failing listing page aborts the run.
func TestRunScrapeBrokenChain(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/articles", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `<html><body>
			<article><h2><a href="/posts/alpha">Alpha</a></h2></article>
			<a rel="next" href="/broken">Next</a>
		</body></html>`)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := newTestConfig(t, srv.URL+"/articles")
	cfg.CSVFile = filepath.Join(t.TempDir(), "articles.csv")

	var logBuf bytes.Buffer
	logger := log.NewLogger(&logBuf, true)

	err := runScrape(context.Background(), cfg, logger)
	if err == nil {
		t.Fatal("expected error for broken listing chain")
	}
	if !strings.Contains(err.Error(), "/broken") {
		t.Errorf("expected failing URL in error, got %v", err)
	}
}

// TestHistoryCmdEmptyDatabase tests history output with no stored runs.
func TestHistoryCmdEmptyDatabase(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--db-dir", t.TempDir()})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("history command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No harvest runs recorded yet.") {
		t.Errorf("expected empty-history message, got %q", buf.String())
	}
}
