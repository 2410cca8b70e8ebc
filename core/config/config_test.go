package config

import (
	"os"
	"path/filepath"
	"testing"

	"card-ledger/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"hBP01"}, cfg.Crawler.ExpansionList())
	assert.Equal(t, "data", cfg.Crawler.OutputDir)
	assert.Equal(t, 500, cfg.Crawler.PageDelayMs)
	assert.Equal(t, 15, cfg.Crawler.HTTP.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Crawler.HTTP.MaxAttempts)
	assert.Equal(t, "v2", cfg.Sync.Schema)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("CRAWLER_EXPANSIONS", "hbp01,HSD01")
	t.Setenv("CRAWLER_HTTP_MAX_ATTEMPTS", "5")
	t.Setenv("SYNC_BACKEND", "rest")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"hBP01", "hSD01"}, cfg.Crawler.ExpansionList())
	assert.Equal(t, 5, cfg.Crawler.HTTP.MaxAttempts)
	assert.Equal(t, BackendREST, cfg.Sync.Backend)
}

func TestLoadConfig_LegacyEnv(t *testing.T) {
	t.Run("Legacy used when canonical unset", func(t *testing.T) {
		t.Setenv("HOCG_EXPANSIONS", "hbp02")
		t.Setenv("SUPABASE_DB_URL", "postgres://u:p@db/x")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, []string{"hBP02"}, cfg.Crawler.ExpansionList())
		assert.Equal(t, "postgres://u:p@db/x", cfg.Database.URL)
	})

	t.Run("Canonical wins", func(t *testing.T) {
		t.Setenv("HOCG_EXPANSIONS", "hbp02")
		t.Setenv("CRAWLER_EXPANSIONS", "hbp03")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, []string{"hBP03"}, cfg.Crawler.ExpansionList())
	})
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_SCHEMA=v1\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SYNC_SCHEMA") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, SchemaV1, cfg.Sync.Schema)
}

func TestCrawler_Validate(t *testing.T) {
	assert.NoError(t, Crawler{Expansions: "hbp01"}.Validate())
	assert.ErrorIs(t, Crawler{Expansions: " , "}.Validate(), ErrNoExpansions)
	assert.Error(t, Crawler{Expansions: "hbp01", PageDelayMs: -1}.Validate())
}

func TestConfig_ValidateSync(t *testing.T) {
	base := func() *Config {
		return &Config{Sync: Sync{Input: "inv.csv", Schema: SchemaV2, Backend: BackendDatabase, StagingTable: "s"}}
	}

	t.Run("Database backend requires connection", func(t *testing.T) {
		cfg := base()
		assert.ErrorIs(t, cfg.ValidateSync(), database.ErrMissingConnection)

		cfg.Database = database.Config{Driver: "postgres", URL: "postgres://x"}
		assert.NoError(t, cfg.ValidateSync())
	})

	t.Run("REST backend requires ledger", func(t *testing.T) {
		cfg := base()
		cfg.Sync.Backend = BackendREST
		assert.ErrorIs(t, cfg.ValidateSync(), ErrMissingLedger)

		cfg.Ledger = Ledger{URL: "https://x.supabase.co", APIKey: "k"}
		assert.NoError(t, cfg.ValidateSync())
	})

	t.Run("Unknown schema", func(t *testing.T) {
		cfg := base()
		cfg.Sync.Schema = "v3"
		assert.ErrorContains(t, cfg.ValidateSync(), "v3")
	})
}
