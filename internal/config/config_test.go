package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()

	dir := filepath.Join(home, ".streams")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestLoadDefaultsWhenConfigFileMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".streams", "streams.toml"), cfg.StreamsPath)
	assert.Equal(t, DefaultExplorerURL, cfg.ExplorerURL)
	assert.Equal(t, time.Second, cfg.WatchInterval)
	assert.Equal(t, 15*time.Second, cfg.WatchReload)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `
[streams]
path = "/tmp/other-streams.toml"

[explorer]
url = "https://stellar.expert/explorer/testnet/"

[watch]
interval = "250ms"
reload = "1m"

[log]
level = "debug"
format = "json"
`)

	v := viper.New()
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other-streams.toml", cfg.StreamsPath)
	assert.Equal(t, "https://stellar.expert/explorer/testnet", cfg.ExplorerURL)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchInterval)
	assert.Equal(t, time.Minute, cfg.WatchReload)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/other-streams.toml", v.GetString(StreamsPathKey))
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "[log]\nlevel = \"debug\"\n")
	t.Setenv("STREAMS_LOG_LEVEL", "error")
	t.Setenv("STREAMS_STREAMS_PATH", "/tmp/env-streams.toml")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/tmp/env-streams.toml", cfg.StreamsPath)
}

func TestLoadMalformedConfigReturnsError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "[log\nlevel = ")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "[watch]\ninterval = \"0s\"\n")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "watch.interval must be positive")
}
