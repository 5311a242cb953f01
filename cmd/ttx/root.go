package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teletextarchive/ttx/internal/log"
)

// NewRootCmd creates the root command for ttx.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ttx",
		Short: "Archive teletext pages as newline-delimited JSON",
		Long: `ttx scrapes the teletext services of German TV stations and stores
each station's pages as one NDJSON snapshot file. Block graphics are
kept as Unicode legacy-computing characters, so snapshots diff cleanly
and render in any modern terminal.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewStationsCmd())
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

// setupLogger creates the command's structured logger from the
// persistent verbose flag.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			verbose = false
		}
	}
	return log.New(cmd.ErrOrStderr(), verbose)
}
