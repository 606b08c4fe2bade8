package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"cour/internal/config"
	"cour/internal/testsupport"
)

const seasonFixture = `{"data":{"searchWorks":{"nodes":[
  {"title":"Example Anime","seasonName":"SPRING","seasonYear":2025,"media":"TV","episodesCount":12,
   "officialSiteUrl":"https://example.test",
   "staffs":{"nodes":[{"roleText":"監督","name":"山田"},{"roleText":"助監督","name":"田中"},{"roleText":"アニメーション制作","name":"Studio A"}]},
   "casts":{"nodes":[{"name":"佐藤","character":{"name":"主人公"}}]}},
  {"title":"Rejected","seasonName":"SPRING","seasonYear":2025,"media":"TV"},
  {"title":"Web Only","seasonName":"SPRING","seasonYear":2025,"media":"WEB"}
]}}}`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	annict     *testsupport.AnnictServer
	notion     *testsupport.NotionServer
}

func setupCLITestEnv(t *testing.T, annictStatus int, annictBody string, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ANNICT_TOKEN", "")
	t.Setenv("NOTION_TOKEN", "")
	t.Setenv("NOTION_DATABASE_ID", "")

	annictServer := testsupport.NewAnnictServer(t, annictStatus, annictBody)
	notionServer := testsupport.NewNotionServer(t, "Rejected")
	opts = append([]testsupport.ConfigOption{
		testsupport.WithAnnictServer(annictServer),
		testsupport.WithNotionServer(notionServer),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		annict:     annictServer,
		notion:     notionServer,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o600))
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
