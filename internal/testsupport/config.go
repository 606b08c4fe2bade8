package testsupport

import (
	"path/filepath"
	"testing"

	"cour/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Annict.Token = "annict-test"
	cfgVal.Notion.Token = "notion-test"
	cfgVal.Notion.DatabaseID = "db-test"
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.History.Path = filepath.Join(base, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAnnictServer points the source client at a stand-in server.
func WithAnnictServer(server *AnnictServer) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Annict.Endpoint = server.URL()
	}
}

// WithNotionServer points the destination client at a stand-in server.
func WithNotionServer(server *NotionServer) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notion.BaseURL = server.URL()
	}
}

// WithHistory enables run history in the temp directory.
func WithHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.History.Path)
}
