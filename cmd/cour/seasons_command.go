package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cour/internal/season"
)

type seasonEntry struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	var since int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "seasons",
		Short: "List season tokens accepted by sync, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			startYear := cfg.Seasons.StartYear
			if since > 0 {
				startYear = since
			}

			tokens := season.Tokens(startYear, time.Now())
			entries := make([]seasonEntry, 0, len(tokens))
			for _, token := range tokens {
				year, name, _ := season.Split(token)
				entries = append(entries, seasonEntry{Token: token, Label: season.Label(name, year)})
			}

			if jsonOutput {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No seasons between %d and now\n", startYear)
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Token, entry.Label})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{header: "Token"},
				{header: "Label"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&since, "since", 0, "First year to list (overrides seasons.start_year)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Write the list as JSON")
	return cmd
}
