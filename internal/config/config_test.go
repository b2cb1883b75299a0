package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GPTBRIDGE_OPENAI_API_KEY", "")

	cfg, err := Load(New(home), "")
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, filepath.Join(home, ".config", "gptbridge"), cfg.Store.Dir)
	assert.Equal(t, filepath.Join(home, ".config", "gptbridge", "secrets"), cfg.Secrets.Dir)
	assert.Equal(t, "Your name is Samir.", cfg.Bridge.Persona)
	assert.Equal(t, "#", cfg.Bridge.EscapeMarker)
	assert.Equal(t, 32, cfg.Bridge.HistoryWindow)
	assert.Equal(t, 2000, cfg.Bridge.ChunkSize)
	assert.Equal(t, 10*time.Second, cfg.Bridge.RetryBackoff)
	assert.Equal(t, time.Hour, cfg.Bridge.ThreadAutoArchive)
	assert.Equal(t, 3200, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 3, cfg.Sweeper.Hour)
	assert.Equal(t, 24*time.Hour, cfg.Sweeper.MaxIdle)
	assert.Equal(t, time.UTC, cfg.Sweeper.Location())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, ".config", "gptbridge")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`
[store]
backend = "sqlite"

[bridge]
persona = "You are terse."
retry_backoff = "3s"

[sweeper]
hour = 5
timezone = "Europe/Paris"
`), 0o600))

	t.Setenv("GPTBRIDGE_BRIDGE_HISTORY_WINDOW", "8")
	t.Setenv("GPTBRIDGE_DISCORD_TOKEN", "bot-token")
	t.Setenv("GPTBRIDGE_OPENAI_API_KEY", "sk-env")

	cfg, err := Load(New(home), "")
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "You are terse.", cfg.Bridge.Persona)
	assert.Equal(t, 3*time.Second, cfg.Bridge.RetryBackoff)
	assert.Equal(t, 8, cfg.Bridge.HistoryWindow)
	assert.Equal(t, 5, cfg.Sweeper.Hour)
	assert.Equal(t, "bot-token", cfg.Discord.Token)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := Load(New(t.TempDir()), filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Store:   StoreConfig{Backend: "mongo", Dir: "/tmp/x"},
		OpenAI:  OpenAIConfig{MaxTokens: 10},
		Bridge:  BridgeConfig{HistoryWindow: 1, ChunkSize: 4000, SendRate: 1, SendBurst: 1},
		Sweeper: SweeperConfig{Hour: 25, Timezone: "Mars/Olympus", MaxIdle: time.Hour},
		Log:     LogConfig{Level: "loud"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "store.backend \"mongo\"")
	assert.ErrorContains(t, err, "bridge.chunk_size")
	assert.ErrorContains(t, err, "sweeper.hour 25")
	assert.ErrorContains(t, err, "sweeper.timezone")
	assert.ErrorContains(t, err, "log.level")
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "data"), expandHome("~/data"))
	assert.Equal(t, "/srv/data", expandHome("/srv/data"))
}
