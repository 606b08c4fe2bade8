package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"cour/internal/fileutil"
	"cour/internal/notion"
)

//go:embed sample_config.toml
var sampleConfig string

// Annict contains source catalog API settings.
type Annict struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Notion contains destination database API settings.
type Notion struct {
	Token          string            `toml:"token"`
	DatabaseID     string            `toml:"database_id"`
	BaseURL        string            `toml:"base_url"`
	Version        string            `toml:"version"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
	Properties     notion.Properties `toml:"properties"`
}

// Transfer contains field-mapping and filtering rules.
type Transfer struct {
	ExcludeWeb     bool   `toml:"exclude_web"`
	ExcludedMedium string `toml:"excluded_medium"`
	// DirectorMatch selects the director role rule: "exact" (trimmed equality)
	// or "contains" (substring, legacy behaviour).
	DirectorMatch string `toml:"director_match"`
	MaxTextLength int    `toml:"max_text_length"`
}

// Seasons contains settings for the season token list.
type Seasons struct {
	StartYear int `toml:"start_year"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// History contains configuration for the optional run history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for cour.
//
// Configuration sections by subsystem:
//   - Annict: source catalog endpoint, token, timeout
//   - Notion: destination API, database, property names
//   - Transfer: medium filter and mapping rules
//   - Seasons: first year offered by the season list
//   - Logging: log format, level, and directory
//   - History: optional SQLite record of past runs
type Config struct {
	Annict   Annict   `toml:"annict"`
	Notion   Notion   `toml:"notion"`
	Transfer Transfer `toml:"transfer"`
	Seasons  Seasons  `toml:"seasons"`
	Logging  Logging  `toml:"logging"`
	History  History  `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// AnnictTimeout returns the source request timeout; zero means none.
func (c *Config) AnnictTimeout() time.Duration {
	return time.Duration(c.Annict.TimeoutSeconds) * time.Second
}

// NotionTimeout returns the destination request timeout; zero means none.
func (c *Config) NotionTimeout() time.Duration {
	return time.Duration(c.Notion.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteAtomic(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}
