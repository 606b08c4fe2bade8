package config

import (
	"cour/internal/annict"
	"cour/internal/mapper"
	"cour/internal/notion"
)

const (
	defaultConfigPath     = "~/.config/cour/config.toml"
	projectConfigName     = "cour.toml"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryPath    = "~/.local/share/cour/history.db"
	defaultTimeoutSeconds = 30
	defaultStartYear      = 2020
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Annict: Annict{
			Endpoint:       annict.DefaultEndpoint,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Notion: Notion{
			BaseURL:        notion.DefaultBaseURL,
			Version:        notion.DefaultVersion,
			TimeoutSeconds: defaultTimeoutSeconds,
			Properties:     notion.DefaultProperties(),
		},
		Transfer: Transfer{
			ExcludeWeb:     true,
			ExcludedMedium: annict.DefaultExcludedMedium,
			DirectorMatch:  mapper.MatchExact,
			MaxTextLength:  mapper.DefaultMaxTextLength,
		},
		Seasons: Seasons{
			StartYear: defaultStartYear,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Path: defaultHistoryPath,
		},
	}
}
