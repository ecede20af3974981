package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the connection timeout for each HTTP request.
	// 30 seconds is generous for ordinary websites while still failing
	// fast enough for interactive use.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPages is the maximum number of pages a crawl visits.
	// This prevents runaway crawling on large or infinitely-generating
	// sites. Users can override this via the --max-pages CLI flag.
	DefaultMaxPages = 200

	// DefaultDelay is the pause between HTTP requests during a crawl.
	// This is a politeness setting to avoid overwhelming the target
	// site. Can be adjusted via the --delay CLI flag.
	DefaultDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies siteharvest in HTTP requests.
	// A descriptive User-Agent lets site operators identify harvester
	// traffic in their logs.
	DefaultUserAgent = "siteharvest/1.0 (+https://github.com/siteharvest/siteharvest)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "siteharvest"
)

// Config holds all configuration options for siteharvest.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ExportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// StartURL is the address the run is seeded with.
	StartURL string

	// Timeout is the connection timeout for each HTTP request.
	Timeout time.Duration

	// MaxPages is the maximum number of pages a crawl visits.
	// A value of 0 means use the default (DefaultMaxPages).
	MaxPages int

	// Delay is the pause between HTTP requests during a crawl.
	Delay time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory
	// exhaustion. Set to 0 to use the default (5MB).
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .siteharvest in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the
	// config file. This is populated by LoadConfigFile.
	SiteConfigs *File

	// CSVFile is the output file path for CSV records.
	// When empty, no CSV file is written.
	CSVFile string

	// JSONFile is the output file path for JSON records.
	// When empty, no JSON file is written.
	JSONFile string

	// MarkdownFile is the output file path for the Markdown report.
	// When empty, no Markdown report is written.
	MarkdownFile string

	// DBDir is the directory path for storing the SQLite database.
	// When set, run results are saved to the database for later review.
	// When empty, run results are not persisted.
	// Defaults to XDG data directory (~/.local/share/siteharvest on Linux).
	DBDir string

	// SaveToDB indicates whether to save run results to the database.
	// This is automatically set to true when DBDir is configured.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, page limit).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		Delay:       DefaultDelay,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for siteharvest.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/siteharvest
// On macOS: ~/Library/Application Support/siteharvest
// On Windows: %LOCALAPPDATA%\siteharvest
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for siteharvest.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/siteharvest
// On macOS: ~/Library/Application Support/siteharvest
// On Windows: %APPDATA%\siteharvest
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any fetching begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// MaxPages must be positive; zero would mean no crawling
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	// Delay must be non-negative
	if c.Delay < 0 {
		return ErrInvalidDelay
	}

	// MaxBodySize must be non-negative; zero means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
