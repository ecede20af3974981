package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/siteharvest/siteharvest/internal/model"
)

// HarvestDB provides SQLite-based storage for harvest runs and their records.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all runs rather than
// one file per site. This keeps history queries across sites simple and
// makes backup/restore a single-file operation.
type HarvestDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HarvestDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HarvestDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HarvestDB, error) {
	dbPath := filepath.Join(dbDir, "siteharvest.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses URI-style mode flags: rw requires the file
	// to exist, rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HarvestDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HarvestDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HarvestDB) createTables() error {
	schema := `
	-- Runs store one row per crawl or scrape invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		start_url TEXT NOT NULL,
		pages_visited INTEGER NOT NULL DEFAULT 0,
		records INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_start_url ON runs(start_url);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- Resources collected by crawl runs
	CREATE TABLE IF NOT EXISTS resources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		page_url TEXT NOT NULL,
		page_title TEXT,
		resource_url TEXT NOT NULL,
		resource_title TEXT,
		resource_type TEXT NOT NULL,
		description TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_resources_run ON resources(run_id);
	CREATE INDEX IF NOT EXISTS idx_resources_url ON resources(resource_url);

	-- Articles collected by scrape runs
	CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		summary TEXT,
		published TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_articles_run ON articles(run_id);
	CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord represents a stored harvest run.
type RunRecord struct {
	ID           int64
	Kind         model.RunKind
	StartURL     string
	PagesVisited int
	Records      int
	StartedAt    time.Time
	Duration     time.Duration
}

// SaveRun inserts a run record and returns its database ID.
func (hdb *HarvestDB) SaveRun(ctx context.Context, summary *model.RunSummary) (int64, error) {
	query := `
	INSERT INTO runs (kind, start_url, pages_visited, records, started_at, duration_ms)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		string(summary.Kind),
		summary.StartURL,
		summary.PagesVisited,
		summary.Records,
		summary.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		summary.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// SaveResources stores the resource records collected by a run.
func (hdb *HarvestDB) SaveResources(ctx context.Context, runID int64, records []model.Resource) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
	INSERT INTO resources (run_id, page_url, page_title, resource_url, resource_title, resource_type, description)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for _, r := range records {
		if _, err := tx.ExecContext(ctx, query,
			runID,
			r.PageURL,
			r.PageTitle,
			r.ResourceURL,
			r.ResourceTitle,
			r.ResourceType,
			r.Description,
		); err != nil {
			return fmt.Errorf("failed to insert resource: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resources: %w", err)
	}
	return nil
}

// SaveArticles stores the article records collected by a run.
func (hdb *HarvestDB) SaveArticles(ctx context.Context, runID int64, records []model.Article) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
	INSERT INTO articles (run_id, title, url, summary, published)
	VALUES (?, ?, ?, ?, ?)
	`

	for _, a := range records {
		if _, err := tx.ExecContext(ctx, query,
			runID,
			a.Title,
			a.URL,
			a.Summary,
			a.Published,
		); err != nil {
			return fmt.Errorf("failed to insert article: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit articles: %w", err)
	}
	return nil
}

// ListRuns returns run records, most recent first, limited to the given
// count. A limit of zero or less returns all runs.
func (hdb *HarvestDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, kind, start_url, pages_visited, records, started_at, duration_ms
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var run RunRecord
		var kind string
		var startedAt string
		var durationMS int64

		if err := rows.Scan(
			&run.ID,
			&kind,
			&run.StartURL,
			&run.PagesVisited,
			&run.Records,
			&startedAt,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.Kind = model.RunKind(kind)
		run.StartedAt = parseTimestamp(startedAt)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		results = append(results, run)
	}

	return results, rows.Err()
}

// GetRunResources retrieves the resource records stored for a run.
func (hdb *HarvestDB) GetRunResources(ctx context.Context, runID int64) ([]model.Resource, error) {
	query := `
	SELECT page_url, page_title, resource_url, resource_title, resource_type, description
	FROM resources
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := hdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run resources: %w", err)
	}
	defer rows.Close()

	var results []model.Resource
	for rows.Next() {
		var r model.Resource
		if err := rows.Scan(
			&r.PageURL,
			&r.PageTitle,
			&r.ResourceURL,
			&r.ResourceTitle,
			&r.ResourceType,
			&r.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// GetRunArticles retrieves the article records stored for a run.
func (hdb *HarvestDB) GetRunArticles(ctx context.Context, runID int64) ([]model.Article, error) {
	query := `
	SELECT title, url, summary, published
	FROM articles
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := hdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run articles: %w", err)
	}
	defer rows.Close()

	var results []model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.Title, &a.URL, &a.Summary, &a.Published); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		results = append(results, a)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
