package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request HTTP timeout. Station servers
	// are ordinary CDN-backed sites; ten seconds matches what the
	// archive has always used.
	DefaultTimeout = 10 * time.Second

	// DefaultConcurrency is the number of stations scraped in parallel.
	// Each station's pipeline is independent, so this is purely a
	// politeness/resource bound.
	DefaultConcurrency = 4

	// DefaultUserAgent identifies the scraper in station logs.
	DefaultUserAgent = "github.com/teletextarchive/ttx"

	// AppName is used for XDG directory paths.
	AppName = "ttx"

	// SnapshotDirName is the directory under OutDir holding one NDJSON
	// file per station.
	SnapshotDirName = "snapshots"
)

// Config holds all runtime options for a scrape run. It is populated
// from CLI flags and passed down explicitly; there is no global state.
type Config struct {
	// OutDir is where station snapshot files are written, one
	// <station>.ndjson per station. Empty means the XDG data dir.
	OutDir string

	// DataDir is the directory for the run-history SQLite database.
	// Empty means the XDG data dir.
	DataDir string

	// StationsFile optionally overrides the built-in station catalog.
	StationsFile string

	// Stations selects which stations to scrape. Empty means all.
	Stations []string

	// Concurrency is the number of stations processed in parallel.
	Concurrency int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is sent with every station request.
	UserAgent string

	// Verbose switches logging to debug level.
	Verbose bool
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		OutDir:      filepath.Join(XDGDataDir(), SnapshotDirName),
		DataDir:     XDGDataDir(),
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
	}
}

// Validate checks the configuration, returning the first problem found.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// Catalog loads the station catalog, applying the stations file when
// one is configured, and resolves the station selection.
func (c *Config) Catalog() ([]Station, error) {
	catalog := BuiltinStations()
	if c.StationsFile != "" {
		var err error
		catalog, err = LoadStationsFile(c.StationsFile)
		if err != nil {
			return nil, err
		}
	}
	return SelectStations(catalog, c.Stations)
}

// XDGDataDir returns the XDG data directory for ttx, e.g.
// ~/.local/share/ttx on Linux.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for ttx.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
