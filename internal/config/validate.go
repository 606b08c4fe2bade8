package config

import (
	"errors"
	"fmt"

	"cour/internal/mapper"
	"cour/internal/services"
)

// Validate ensures the configuration is usable. Credentials are not required
// here so commands that never call the APIs still work; see
// ValidateCredentials.
func (c *Config) Validate() error {
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateTransfer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if c.Seasons.StartYear <= 0 {
		return errors.New("seasons.start_year must be positive")
	}
	return nil
}

// ValidateCredentials reports missing tokens or database ID needed for a
// transfer. skipDestination relaxes the Notion requirements for dry runs.
func (c *Config) ValidateCredentials(skipDestination bool) error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	if c.Annict.Token == "" {
		return services.Wrap(services.ErrConfiguration, "config", "", fmt.Sprintf(
			"annict.token is required. Set ANNICT_TOKEN or edit %s (create with 'cour config init')", defaultPath), nil)
	}
	if skipDestination {
		return nil
	}
	if c.Notion.Token == "" {
		return services.Wrap(services.ErrConfiguration, "config", "", fmt.Sprintf(
			"notion.token is required. Set NOTION_TOKEN or edit %s", defaultPath), nil)
	}
	if c.Notion.DatabaseID == "" {
		return services.Wrap(services.ErrConfiguration, "config", "", fmt.Sprintf(
			"notion.database_id is required. Set NOTION_DATABASE_ID, pass --database-id, or edit %s", defaultPath), nil)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	if c.Annict.TimeoutSeconds < 0 {
		return errors.New("annict.timeout_seconds must be >= 0")
	}
	if c.Notion.TimeoutSeconds < 0 {
		return errors.New("notion.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateTransfer() error {
	if _, err := mapper.ParseMatchPolicy(c.Transfer.DirectorMatch, mapper.DirectorRole); err != nil {
		return fmt.Errorf("transfer.director_match: %w", err)
	}
	if c.Transfer.MaxTextLength < 1 || c.Transfer.MaxTextLength > mapper.DefaultMaxTextLength {
		return fmt.Errorf("transfer.max_text_length must be between 1 and %d", mapper.DefaultMaxTextLength)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}
