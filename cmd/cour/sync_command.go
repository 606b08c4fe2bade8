package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cour/internal/annict"
	"cour/internal/config"
	"cour/internal/history"
	"cour/internal/logging"
	"cour/internal/mapper"
	"cour/internal/notion"
	"cour/internal/season"
	"cour/internal/transfer"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var (
		seasonToken string
		databaseID  string
		includeWeb  bool
		dryRun      bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Create a Notion page for every work of one season",
		Long: `Fetch every work airing in the given season from Annict and create one
page per work in the configured Notion database, in source order.

Runs are not idempotent: syncing the same season twice creates duplicate pages.`,
		Example: "  cour sync --season 2025-spring\n  cour sync --season 2025-spring --dry-run --json",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			effective := *cfg
			if strings.TrimSpace(databaseID) != "" {
				effective.Notion.DatabaseID = strings.TrimSpace(databaseID)
			}
			if err := effective.ValidateCredentials(dryRun); err != nil {
				return err
			}

			token := strings.TrimSpace(seasonToken)
			if _, name, ok := season.Split(token); !ok || !season.Known(name) {
				logger.Warn("season token not recognized; sending as given",
					logging.String(logging.FieldSeason, token),
					logging.String("expected", "YYYY-winter|spring|summer|autumn"),
				)
			}

			runner, closeRunner, err := buildRunner(&effective, logger)
			if err != nil {
				return err
			}
			defer closeRunner()

			excludeWeb := effective.Transfer.ExcludeWeb && !includeWeb
			report, runErr := runner.Run(cmd.Context(), transfer.Request{
				Season:           token,
				SourceToken:      effective.Annict.Token,
				DestinationToken: effective.Notion.Token,
				DatabaseID:       effective.Notion.DatabaseID,
				ExcludeWeb:       excludeWeb,
				DryRun:           dryRun,
			})

			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				renderReport(cmd.OutOrStdout(), report, shouldColorize(cmd.OutOrStdout()))
			}

			if runErr != nil {
				return runErr
			}
			if failed := report.TotalFailed(); failed > 0 {
				return fmt.Errorf("%d of %d page creations failed", failed, report.TotalAttempted)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&seasonToken, "season", "s", "", "Season token such as 2025-spring")
	cmd.Flags().StringVar(&databaseID, "database-id", "", "Destination database ID (overrides notion.database_id)")
	cmd.Flags().BoolVar(&includeWeb, "include-web", false, "Keep works whose medium is the excluded medium (WEB)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Map works and show the payloads without creating pages")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Write the run report as JSON")
	_ = cmd.MarkFlagRequired("season")
	_ = cmd.RegisterFlagCompletionFunc("season", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		startYear := config.Default().Seasons.StartYear
		if cfg, err := ctx.ensureConfig(); err == nil {
			startYear = cfg.Seasons.StartYear
		}
		return season.Tokens(startYear, time.Now()), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// buildRunner wires the transfer runner from configuration. The returned
// close func releases the history store when one was opened.
func buildRunner(cfg *config.Config, logger *slog.Logger) (*transfer.Runner, func(), error) {
	director, err := mapper.ParseMatchPolicy(cfg.Transfer.DirectorMatch, mapper.DirectorRole)
	if err != nil {
		return nil, nil, fmt.Errorf("transfer.director_match: %w", err)
	}
	m := mapper.New(
		mapper.WithDirectorRule(director),
		mapper.WithMaxTextLength(cfg.Transfer.MaxTextLength),
	)

	annictLogger := logging.NewComponentLogger(logger, "annict")
	notionLogger := logging.NewComponentLogger(logger, "notion")

	opts := []transfer.Option{
		transfer.WithFetcherFactory(func(token string) (annict.Fetcher, error) {
			return annict.New(token,
				annict.WithEndpoint(cfg.Annict.Endpoint),
				annict.WithTimeout(cfg.AnnictTimeout()),
				annict.WithLogger(annictLogger),
			)
		}),
		transfer.WithWriterFactory(func(token string) (notion.Writer, error) {
			return notion.New(token,
				notion.WithBaseURL(cfg.Notion.BaseURL),
				notion.WithVersion(cfg.Notion.Version),
				notion.WithProperties(cfg.Notion.Properties),
				notion.WithTimeout(cfg.NotionTimeout()),
				notion.WithLogger(notionLogger),
			)
		}),
		transfer.WithMapper(m),
		transfer.WithProperties(cfg.Notion.Properties),
		transfer.WithExcludedMedium(cfg.Transfer.ExcludedMedium),
		transfer.WithLogger(logger),
	}

	closeFn := func() {}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open run history: %w", err)
		}
		opts = append(opts, transfer.WithRecorder(store))
		closeFn = func() {
			if err := store.Close(); err != nil {
				logger.Warn("close run history failed", logging.Error(err))
			}
		}
	}

	directorRule, studioRule, limit := m.Rules()
	logger.Debug("transfer runner configured",
		logging.String("director_rule", directorRule),
		logging.String("studio_rule", studioRule),
		logging.Int("max_text_length", limit),
		logging.Bool("history", cfg.History.Enabled),
	)
	return transfer.NewRunner(opts...), closeFn, nil
}
