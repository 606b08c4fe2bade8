package config

import (
	"fmt"
	"os"
	"strings"

	"cour/internal/annict"
	"cour/internal/mapper"
	"cour/internal/notion"
)

func (c *Config) normalize() error {
	c.normalizeAnnict()
	c.normalizeNotion()
	c.normalizeTransfer()
	c.normalizeLogging()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeAnnict() {
	c.Annict.Token = strings.TrimSpace(c.Annict.Token)
	if c.Annict.Token == "" {
		if value, ok := os.LookupEnv("ANNICT_TOKEN"); ok {
			c.Annict.Token = strings.TrimSpace(value)
		}
	}
	c.Annict.Endpoint = strings.TrimSpace(c.Annict.Endpoint)
	if c.Annict.Endpoint == "" {
		c.Annict.Endpoint = annict.DefaultEndpoint
	}
}

func (c *Config) normalizeNotion() {
	c.Notion.Token = strings.TrimSpace(c.Notion.Token)
	if c.Notion.Token == "" {
		if value, ok := os.LookupEnv("NOTION_TOKEN"); ok {
			c.Notion.Token = strings.TrimSpace(value)
		}
	}
	c.Notion.DatabaseID = strings.TrimSpace(c.Notion.DatabaseID)
	if c.Notion.DatabaseID == "" {
		if value, ok := os.LookupEnv("NOTION_DATABASE_ID"); ok {
			c.Notion.DatabaseID = strings.TrimSpace(value)
		}
	}
	c.Notion.BaseURL = strings.TrimRight(strings.TrimSpace(c.Notion.BaseURL), "/")
	if c.Notion.BaseURL == "" {
		c.Notion.BaseURL = notion.DefaultBaseURL
	}
	c.Notion.Version = strings.TrimSpace(c.Notion.Version)
	if c.Notion.Version == "" {
		c.Notion.Version = notion.DefaultVersion
	}
	props := &c.Notion.Properties
	for _, field := range []*string{
		&props.Title, &props.Season, &props.Studio, &props.OfficialSite,
		&props.Director, &props.Cast, &props.Staff, &props.Episodes, &props.Image,
	} {
		*field = strings.TrimSpace(*field)
	}
	if props.Title == "" {
		props.Title = notion.DefaultProperties().Title
	}
}

func (c *Config) normalizeTransfer() {
	c.Transfer.ExcludedMedium = strings.TrimSpace(c.Transfer.ExcludedMedium)
	if c.Transfer.ExcludedMedium == "" {
		c.Transfer.ExcludedMedium = annict.DefaultExcludedMedium
	}
	c.Transfer.DirectorMatch = strings.ToLower(strings.TrimSpace(c.Transfer.DirectorMatch))
	if c.Transfer.DirectorMatch == "" {
		c.Transfer.DirectorMatch = mapper.MatchExact
	}
	if c.Transfer.MaxTextLength == 0 {
		c.Transfer.MaxTextLength = mapper.DefaultMaxTextLength
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
