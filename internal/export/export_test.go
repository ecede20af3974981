package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/siteharvest/siteharvest/internal/model"
)

var testResources = []model.Resource{
	{
		PageURL:       "https://www.example.org/library",
		PageTitle:     "Library",
		ResourceURL:   "https://www.example.org/files/guide.pdf",
		ResourceTitle: "Étude guide",
		ResourceType:  "pdf",
		Description:   "A guide with notes & examples.",
	},
	{
		PageURL:       "https://www.example.org/",
		ResourceURL:   "https://www.example.org/media/talk.mp3",
		ResourceTitle: "Talk",
		ResourceType:  "mp3",
	},
}

var testArticles = []model.Article{
	{Title: "First", URL: "https://blog.example.org/first", Summary: "About first.", Published: "2024-01-15"},
	{Title: "Second", URL: "https://blog.example.org/second"},
}

// TestCSVWriter tests CSV serialization.
func TestCSVWriter(t *testing.T) {
	t.Parallel()

	t.Run("fixed resource column order", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewCSVWriter(&buf).WriteResources(testResources); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "page_url,page_title,resource_url,resource_title,resource_type,description" {
			t.Errorf("unexpected header: %q", lines[0])
		}
		if !strings.Contains(lines[1], "guide.pdf") || !strings.Contains(lines[1], "pdf") {
			t.Errorf("unexpected first row: %q", lines[1])
		}
		// Missing optional fields serialize as empty cells.
		if !strings.Contains(lines[2], ",,") {
			t.Errorf("expected empty cells for missing fields: %q", lines[2])
		}
	})

	t.Run("empty result set writes header only", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewCSVWriter(&buf).WriteResources(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimRight(buf.String(), "\n") != "page_url,page_title,resource_url,resource_title,resource_type,description" {
			t.Errorf("expected header-only output, got %q", buf.String())
		}
	})

	t.Run("article columns", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewCSVWriter(&buf).WriteArticles(testArticles); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(buf.String(), "title,url,summary,published\n") {
			t.Errorf("unexpected header: %q", buf.String())
		}
	})
}

// TestJSONWriter tests JSON serialization.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("pretty printed array with non-ASCII preserved", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf).WriteResources(testResources); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Étude guide") {
			t.Error("expected non-ASCII text preserved verbatim")
		}
		if !strings.Contains(out, "notes & examples") {
			t.Error("expected ampersand unescaped")
		}
		if !strings.Contains(out, "\n  {") {
			t.Error("expected indented output")
		}

		var decoded []model.Resource
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Errorf("expected 2 records round-tripped, got %d", len(decoded))
		}
		if decoded[0].PageURL != testResources[0].PageURL {
			t.Errorf("field mismatch after round trip: %+v", decoded[0])
		}
	})

	t.Run("nil records encode as empty array", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewJSONWriter(&buf).WriteArticles(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected empty array, got %q", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown report.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders summary and record table", func(t *testing.T) {
		t.Parallel()

		summary := &model.RunSummary{
			Kind:         model.RunKindCrawl,
			StartURL:     "https://www.example.org/",
			PagesVisited: 3,
			StartedAt:    time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
			Duration:     1500 * time.Millisecond,
		}

		var buf strings.Builder
		w := NewMarkdownWriter(&buf, WithRunSummary(summary))
		if _, err := w.WriteResources(testResources); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Harvested Resources",
			"Pages Visited",
			"[Étude guide](https://www.example.org/files/guide.pdf)",
			"pdf",
			"1.5s",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("empty result set says so", func(t *testing.T) {
		t.Parallel()

		var buf strings.Builder
		if _, err := NewMarkdownWriter(&buf).WriteArticles(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No articles were found.") {
			t.Errorf("expected empty-set message, got %q", buf.String())
		}
	})
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var csvBuf, jsonBuf strings.Builder
	mw := NewMultiWriter(NewCSVWriter(&csvBuf), NewJSONWriter(&jsonBuf))

	if _, err := mw.WriteArticles(testArticles); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if csvBuf.Len() == 0 || jsonBuf.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

// TestCell tests Markdown table cell sanitization.
func TestCell(t *testing.T) {
	t.Parallel()

	if got := cell(""); got != "-" {
		t.Errorf("empty cell = %q, want dash", got)
	}
	if got := cell("a|b"); got != `a\|b` {
		t.Errorf("pipe not escaped: %q", got)
	}
	if got := cell("a\nb"); got != "a b" {
		t.Errorf("newline not collapsed: %q", got)
	}
}
