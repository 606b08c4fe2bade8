package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cour/internal/config"
	"cour/internal/mapper"
	"cour/internal/notion"
	"cour/internal/services"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ANNICT_TOKEN", "")
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_DATABASE_ID", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfigUsesEnvTokensAndExpandsPaths(t *testing.T) {
	home := isolate(t)
	t.Setenv("ANNICT_TOKEN", " annict-token ")
	t.Setenv("NOTION_TOKEN", "notion-token")
	t.Setenv("NOTION_DATABASE_ID", "db-123")

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(home, ".config", "cour", "config.toml"), resolved)

	assert.Equal(t, "annict-token", cfg.Annict.Token)
	assert.Equal(t, "notion-token", cfg.Notion.Token)
	assert.Equal(t, "db-123", cfg.Notion.DatabaseID)
	assert.Equal(t, filepath.Join(home, ".local", "share", "cour", "history.db"), cfg.History.Path)
	assert.False(t, cfg.History.Enabled)
	assert.Empty(t, cfg.Logging.Dir)
	assert.True(t, cfg.Transfer.ExcludeWeb)
	assert.Equal(t, "WEB", cfg.Transfer.ExcludedMedium)
	assert.Equal(t, mapper.MatchExact, cfg.Transfer.DirectorMatch)
	assert.Equal(t, mapper.DefaultMaxTextLength, cfg.Transfer.MaxTextLength)
	assert.Equal(t, notion.DefaultProperties(), cfg.Notion.Properties)
	assert.Empty(t, cfg.Notion.Properties.Episodes)
	assert.Empty(t, cfg.Notion.Properties.Image)
	assert.Equal(t, "2022-06-28", cfg.Notion.Version)
}

func TestLoadCustomConfigOverridesDefaults(t *testing.T) {
	home := isolate(t)
	t.Setenv("NOTION_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "cour.toml")
	contents := `
[annict]
token = "file-token"
timeout_seconds = 5

[notion]
token = "file-notion"
database_id = "abc"
base_url = "https://notion.test/v1/"

[notion.properties]
title = "Name"
episodes = ""
image = "Visual"

[transfer]
exclude_web = false
director_match = "Contains"
max_text_length = 500

[logging]
format = "JSON"
level = "Debug"
dir = "~/logs"

[history]
enabled = true
path = "~/runs.db"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)

	assert.Equal(t, "file-token", cfg.Annict.Token)
	assert.Equal(t, "file-notion", cfg.Notion.Token, "file value wins over env")
	assert.Equal(t, "https://notion.test/v1", cfg.Notion.BaseURL)
	assert.Equal(t, "Name", cfg.Notion.Properties.Title)
	assert.Empty(t, cfg.Notion.Properties.Episodes)
	assert.Equal(t, "Visual", cfg.Notion.Properties.Image)
	assert.Equal(t, "作品名", config.Default().Notion.Properties.Title)
	assert.False(t, cfg.Transfer.ExcludeWeb)
	assert.Equal(t, mapper.MatchContains, cfg.Transfer.DirectorMatch)
	assert.Equal(t, 500, cfg.Transfer.MaxTextLength)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(home, "logs"), cfg.Logging.Dir)
	assert.Equal(t, filepath.Join(home, "runs.db"), cfg.History.Path)
	assert.EqualValues(t, 5_000_000_000, cfg.AnnictTimeout())
}

func TestLoadPrefersProjectConfigWhenDefaultMissing(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("cour.toml", []byte("[transfer]\nexcluded_medium = \"OVA\"\n"), 0o644))

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "cour.toml", filepath.Base(resolved))
	assert.Equal(t, "OVA", cfg.Transfer.ExcludedMedium)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[transfer]\nbogus = 1\n"), 0o644))

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"director policy", func(c *config.Config) { c.Transfer.DirectorMatch = "fuzzy" }, "transfer.director_match"},
		{"text length", func(c *config.Config) { c.Transfer.MaxTextLength = 2001 }, "transfer.max_text_length"},
		{"negative timeout", func(c *config.Config) { c.Notion.TimeoutSeconds = -1 }, "notion.timeout_seconds"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"history path", func(c *config.Config) { c.History.Enabled = true; c.History.Path = "" }, "history.path"},
		{"start year", func(c *config.Config) { c.Seasons.StartYear = 0 }, "seasons.start_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	isolate(t)
	cfg := config.Default()

	err := cfg.ValidateCredentials(true)
	require.ErrorIs(t, err, services.ErrConfiguration)
	assert.Contains(t, err.Error(), "ANNICT_TOKEN")

	cfg.Annict.Token = "a"
	assert.NoError(t, cfg.ValidateCredentials(true), "dry run needs no destination")

	err = cfg.ValidateCredentials(false)
	require.ErrorIs(t, err, services.ErrConfiguration)
	assert.Contains(t, err.Error(), "notion.token")
	assert.NotContains(t, err.Error(), "--notion-token", "sync has no token flag")

	cfg.Notion.Token = "n"
	err = cfg.ValidateCredentials(false)
	require.ErrorIs(t, err, services.ErrConfiguration)
	assert.Contains(t, err.Error(), "notion.database_id")

	cfg.Notion.DatabaseID = "db"
	assert.NoError(t, cfg.ValidateCredentials(false))
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded config.Config
	require.NoError(t, toml.Unmarshal(raw, &decoded))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, notion.DefaultProperties(), cfg.Notion.Properties)
	assert.Equal(t, config.Default().Transfer, cfg.Transfer)
}

func TestExpandPathHandlesTilde(t *testing.T) {
	home := isolate(t)
	got, err := config.ExpandPath("~/data/file.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "file.db"), got)

	got, err = config.ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
