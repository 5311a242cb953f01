package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teletextarchive/ttx/internal/config"
	"github.com/teletextarchive/ttx/internal/model"
	"github.com/teletextarchive/ttx/internal/ndjson"
	"github.com/teletextarchive/ttx/internal/render"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <station> [page[/sub]]",
		Short: "Render an archived page on the terminal",
		Long: `Show reads a station's snapshot file and renders one page as a
character grid, by default in ANSI colors. Without a page argument the
station's first archived page is shown.

Examples:
  # Show page 100 of the NDR snapshot
  ttx show ndr 100

  # Show the second sub-page of page 101
  ttx show ndr 101/2

  # Plain text without escape sequences
  ttx show --no-color ndr 100`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runShowCmd,
	}

	cmd.Flags().StringP("out", "o", "", "Snapshot directory to read from (default: XDG data dir)")
	cmd.Flags().Bool("no-color", false, "Render without ANSI color escapes")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = filepath.Join(config.XDGDataDir(), config.SnapshotDirName)
	}
	noColor, err := cmd.Flags().GetBool("no-color")
	if err != nil {
		return err
	}

	station := args[0]
	snap, err := ndjson.ReadFile(filepath.Join(dir, station+".ndjson"))
	if err != nil {
		return fmt.Errorf("read snapshot for %s: %w", station, err)
	}

	page, err := selectPage(snap, args[1:])
	if err != nil {
		return err
	}

	return render.Page(cmd.OutOrStdout(), page, render.Options{Colors: !noColor})
}

// selectPage resolves the optional page argument against a snapshot.
func selectPage(snap *ndjson.Snapshot, args []string) (*model.Page, error) {
	if len(args) == 0 {
		if len(snap.Pages) == 0 {
			return nil, fmt.Errorf("snapshot holds no pages")
		}
		return snap.Pages[0], nil
	}

	number, subArg, hasSub := strings.Cut(args[0], "/")
	subPage := 0
	if hasSub {
		parsed, err := strconv.Atoi(subArg)
		if err != nil {
			return nil, fmt.Errorf("bad sub-page %q", subArg)
		}
		subPage = parsed
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return nil, fmt.Errorf("bad page number %q", args[0])
	}

	page := snap.Page(n, subPage)
	if page == nil {
		return nil, fmt.Errorf("page %s not in snapshot", args[0])
	}
	return page, nil
}
