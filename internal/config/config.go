// Package config loads gptbridge settings from config.toml, GPTBRIDGE_* environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	EnvPrefix  = "GPTBRIDGE"
	configName = "config"
	configType = "toml"
	appDir     = ".config/gptbridge"
)

const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

var backends = []string{BackendJSON, BackendYAML, BackendTOML, BackendSQLite}

type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Bridge  BridgeConfig  `mapstructure:"bridge"`
	Sweeper SweeperConfig `mapstructure:"sweeper"`
	Discord DiscordConfig `mapstructure:"discord"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
	Secrets SecretsConfig `mapstructure:"secrets"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	CompletionModel string `mapstructure:"completion_model"`
	ChatModel       string `mapstructure:"chat_model"`
	MaxTokens       int    `mapstructure:"max_tokens"`
}

type BridgeConfig struct {
	Persona           string        `mapstructure:"persona"`
	EscapeMarker      string        `mapstructure:"escape_marker"`
	HistoryWindow     int           `mapstructure:"history_window"`
	ChunkSize         int           `mapstructure:"chunk_size"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	ThreadAutoArchive time.Duration `mapstructure:"thread_auto_archive"`
	SendRate          float64       `mapstructure:"send_rate"`
	SendBurst         int           `mapstructure:"send_burst"`
}

type SweeperConfig struct {
	Hour     int           `mapstructure:"hour"`
	Timezone string        `mapstructure:"timezone"`
	MaxIdle  time.Duration `mapstructure:"max_idle"`
}

type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	AppID   string `mapstructure:"app_id"`
	GuildID string `mapstructure:"guild_id"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SecretsConfig struct {
	Dir string `mapstructure:"dir"`
}

// New returns a viper instance with defaults and environment binding applied.
func New(homeDir string) *viper.Viper {
	v := viper.New()
	setDefaults(v, filepath.Join(homeDir, appDir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault("store.backend", BackendJSON)
	v.SetDefault("store.dir", baseDir)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.completion_model", "gpt-3.5-turbo-instruct")
	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 3200)

	v.SetDefault("bridge.persona", "Your name is Samir.")
	v.SetDefault("bridge.escape_marker", "#")
	v.SetDefault("bridge.history_window", 32)
	v.SetDefault("bridge.chunk_size", 2000)
	v.SetDefault("bridge.retry_backoff", "10s")
	v.SetDefault("bridge.thread_auto_archive", "60m")
	v.SetDefault("bridge.send_rate", 5.0)
	v.SetDefault("bridge.send_burst", 5)

	v.SetDefault("sweeper.hour", 3)
	v.SetDefault("sweeper.timezone", "UTC")
	v.SetDefault("sweeper.max_idle", "24h")

	v.SetDefault("discord.token", "")
	v.SetDefault("discord.app_id", "")
	v.SetDefault("discord.guild_id", "")

	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("secrets.dir", filepath.Join(baseDir, "secrets"))
}

// Load reads configFile, or config.toml from the store directory when configFile is empty. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(v.GetString("store.dir"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	cfg.Secrets.Dir = expandHome(cfg.Secrets.Dir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if !slices.Contains(backends, c.Store.Backend) {
		errs = append(errs, fmt.Errorf("store.backend %q must be one of %s", c.Store.Backend, strings.Join(backends, ", ")))
	}
	if strings.TrimSpace(c.Store.Dir) == "" {
		errs = append(errs, errors.New("store.dir must not be empty"))
	}
	if c.OpenAI.MaxTokens <= 0 {
		errs = append(errs, errors.New("openai.max_tokens must be positive"))
	}
	if c.Bridge.HistoryWindow <= 0 {
		errs = append(errs, errors.New("bridge.history_window must be positive"))
	}
	if c.Bridge.ChunkSize <= 0 || c.Bridge.ChunkSize > 2000 {
		errs = append(errs, errors.New("bridge.chunk_size must be between 1 and 2000"))
	}
	if c.Bridge.RetryBackoff < 0 {
		errs = append(errs, errors.New("bridge.retry_backoff must not be negative"))
	}
	if c.Bridge.SendRate <= 0 || c.Bridge.SendBurst <= 0 {
		errs = append(errs, errors.New("bridge.send_rate and bridge.send_burst must be positive"))
	}
	if c.Sweeper.Hour < 0 || c.Sweeper.Hour > 23 {
		errs = append(errs, fmt.Errorf("sweeper.hour %d must be between 0 and 23", c.Sweeper.Hour))
	}
	if c.Sweeper.MaxIdle <= 0 {
		errs = append(errs, errors.New("sweeper.max_idle must be positive"))
	}
	if _, err := time.LoadLocation(c.Sweeper.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("sweeper.timezone: %w", err))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// Location returns the sweeper time zone. Validate has already checked it loads.
func (c SweeperConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
