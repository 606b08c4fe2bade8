package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cour/internal/history"
	"cour/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded transfer runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled; set [history] enabled = true in the config")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if id := strings.TrimSpace(runID); id != "" {
				outcomes, err := store.Outcomes(cmd.Context(), id)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, outcomes)
				}
				if len(outcomes) == 0 {
					fmt.Fprintf(out, "No outcomes recorded for run %s\n", id)
					return nil
				}
				rows := make([][]string, 0, len(outcomes))
				for idx, outcome := range outcomes {
					rows = append(rows, []string{
						strconv.Itoa(idx + 1),
						outcome.Title,
						yesNo(outcome.Succeeded),
						strconv.Itoa(outcome.StatusCode),
						textutil.Truncate(outcome.ResponseBody, responseBodyPreview),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "#", align: alignRight},
					{header: "Title", maxWidth: 40},
					{header: "Created"},
					{header: "Status", align: alignRight},
					{header: "Response", maxWidth: 60},
				}, rows))
				return nil
			}

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Season,
					string(run.Status),
					yesNo(run.DryRun),
					strconv.Itoa(run.TotalAttempted),
					strconv.Itoa(run.TotalSucceeded),
					run.RunID,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "Started"},
				{header: "Season"},
				{header: "Status"},
				{header: "Dry run"},
				{header: "Attempted", align: alignRight},
				{header: "Succeeded", align: alignRight},
				{header: "Run ID"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-work outcomes of one run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Write the runs as JSON")
	return cmd
}
