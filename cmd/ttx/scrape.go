package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teletextarchive/ttx/internal/archive"
	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/report"
	"github.com/teletextarchive/ttx/internal/scrape"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [station...]",
		Short: "Scrape stations and write NDJSON snapshots",
		Long: `Scrape fetches the current teletext pages of the selected stations,
decodes them into the canonical page model, and writes one NDJSON
snapshot file per station. Without arguments every station in the
catalog is scraped.

Pages that fail to decode are archived as error markers; they never
abort a station run. A station whose page index is unreachable is
skipped with an error in the summary.

Examples:
  # Scrape all stations into the default data directory
  ttx scrape

  # Scrape two stations into ./out
  ttx scrape --out ./out ndr ntv

  # Use a custom station catalog
  ttx scrape --stations stations.yaml

  # Write a Markdown run report
  ttx scrape --report report.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().StringP("out", "o", "", "Snapshot output directory (default: XDG data dir)")
	cmd.Flags().StringP("stations", "s", "", "Station catalog YAML file overriding the built-in catalog")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Per-request HTTP timeout")
	cmd.Flags().IntP("concurrency", "c", config.DefaultConcurrency, "Number of stations scraped in parallel")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent, "User-Agent header sent to stations")
	cmd.Flags().StringP("report", "r", "", "Write a Markdown run report to the given file")
	cmd.Flags().Bool("no-history", false, "Skip recording the run in the history database")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScrapeConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	stations, err := cfg.Catalog()
	if err != nil {
		return err
	}

	// Interrupts cancel in-flight station walks; finished snapshots
	// stay on disk.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}
	var history *archive.DB
	if !noHistory {
		history, err = archive.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer history.Close() //nolint:errcheck // nothing left to do on close failure
	}

	runner := scrape.NewRunner(cfg, logger, history)
	runs, err := runner.Run(ctx, stations)
	if err != nil {
		return err
	}

	if err := report.WriteText(cmd.OutOrStdout(), runs); err != nil {
		return err
	}

	reportPath, err := cmd.Flags().GetString("report")
	if err != nil {
		return err
	}
	if reportPath != "" {
		if err := writeMarkdownReport(reportPath, runs); err != nil {
			return err
		}
	}
	return nil
}

// buildScrapeConfig creates a Config from cobra command flags.
func buildScrapeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Stations = args

	var err error

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return nil, err
	}
	if out != "" {
		cfg.OutDir = out
	}

	cfg.StationsFile, err = cmd.Flags().GetString("stations")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// writeMarkdownReport writes the run report to path, creating parent
// directories as needed.
func writeMarkdownReport(path string, runs []report.Run) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // report path comes from the CLI flag
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.WriteMarkdown(f, runs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
