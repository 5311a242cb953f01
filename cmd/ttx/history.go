package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teletextarchive/ttx/internal/archive"
	"github.com/teletextarchive/ttx/internal/config"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [station]",
		Short: "Show recent scrape runs",
		Long: `History lists the most recent scrape runs recorded in the history
database, newest first. With a station argument only that station's
runs are shown.

Examples:
  # The last ten runs across all stations
  ttx history

  # The last five NDR runs
  ttx history --limit 5 ndr`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("data", "d", "", "History database directory (default: XDG data dir)")
	cmd.Flags().IntP("limit", "n", 10, "Maximum number of runs to show")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("data")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	station := ""
	if len(args) == 1 {
		station = args[0]
	}

	db, err := archive.Open(dir)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only usage

	runs, err := db.Runs(cmd.Context(), station, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
		return nil
	}

	for _, run := range runs {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s added=%d changed=%d unchanged=%d removed=%d errors=%d\n",
			run.Timestamp.Format("2006-01-02 15:04:05"), run.Station,
			run.Added, run.Changed, run.Unchanged, run.Removed, run.Errors); err != nil {
			return err
		}
	}
	return nil
}
