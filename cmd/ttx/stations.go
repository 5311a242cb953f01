package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teletextarchive/ttx/internal/config"
)

// NewStationsCmd creates the stations command.
func NewStationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List the station catalog",
		Long: `Stations prints every station ttx knows about, with its source
format family. A catalog file given with --stations is merged over the
built-in list the same way the scrape command does it.`,
		Args: cobra.NoArgs,
		RunE: runStationsCmd,
	}

	cmd.Flags().StringP("stations", "s", "", "Station catalog YAML file overriding the built-in catalog")

	return cmd
}

// runStationsCmd executes the stations command.
func runStationsCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("stations")
	if err != nil {
		return err
	}

	catalog := config.BuiltinStations()
	if path != "" {
		catalog, err = config.LoadStationsFile(path)
		if err != nil {
			return err
		}
	}

	for _, st := range catalog {
		family := string(st.Family)
		if st.Dialect != "" {
			family += "/" + st.Dialect
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-14s %s\n", st.Name, family, st.BaseURL); err != nil {
			return err
		}
	}
	return nil
}
