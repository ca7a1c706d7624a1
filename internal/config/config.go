package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StreamsPathKey   = "streams.path"
	ExplorerURLKey   = "explorer.url"
	WatchIntervalKey = "watch.interval"
	WatchReloadKey   = "watch.reload"
	LogLevelKey      = "log.level"
	LogFormatKey     = "log.format"

	DefaultExplorerURL = "https://stellar.expert/explorer/public"

	envPrefix   = "STREAMS"
	configDir   = ".streams"
	configName  = "config"
	streamsFile = "streams.toml"
)

type Config struct {
	StreamsPath   string
	ExplorerURL   string
	WatchInterval time.Duration
	WatchReload   time.Duration
	LogLevel      string
	LogFormat     string
}

// DefaultStreamsPath is ~/.streams/streams.toml.
func DefaultStreamsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir, streamsFile), nil
}

// Load reads ~/.streams/config.toml into v and applies STREAMS_ environment
// overrides. A missing file leaves the defaults in place.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	streamsPath, err := DefaultStreamsPath()
	if err != nil {
		return Config{}, err
	}
	configPath := filepath.Dir(streamsPath)

	v.SetDefault(StreamsPathKey, streamsPath)
	v.SetDefault(ExplorerURLKey, DefaultExplorerURL)
	v.SetDefault(WatchIntervalKey, time.Second)
	v.SetDefault(WatchReloadKey, 15*time.Second)
	v.SetDefault(LogLevelKey, "warn")
	v.SetDefault(LogFormatKey, "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		StreamsPath:   v.GetString(StreamsPathKey),
		ExplorerURL:   strings.TrimRight(v.GetString(ExplorerURLKey), "/"),
		WatchInterval: v.GetDuration(WatchIntervalKey),
		WatchReload:   v.GetDuration(WatchReloadKey),
		LogLevel:      v.GetString(LogLevelKey),
		LogFormat:     v.GetString(LogFormatKey),
	}
	if cfg.WatchInterval <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", WatchIntervalKey, cfg.WatchInterval)
	}
	if cfg.WatchReload <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", WatchReloadKey, cfg.WatchReload)
	}

	return cfg, nil
}
