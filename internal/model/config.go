package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds the connection settings for the remote task service.
type ServerConfig struct {
	// BaseURL is the root URL of the task service (e.g., http://localhost:3000).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds a single request. Zero leaves the transport default.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// DisplayConfig holds UI preferences that are not toggled at runtime.
type DisplayConfig struct {
	// Horizon is the list shown on start: today, tomorrow, week, month
	// or a day count.
	Horizon string `mapstructure:"horizon" yaml:"horizon"`

	// RefreshIntervalSec enables periodic reloads when positive.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// LogConfig controls the application log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StartHorizon parses Display.Horizon, falling back to today.
func (c *AppConfig) StartHorizon() Horizon {
	h, err := ParseHorizon(c.Display.Horizon)
	if err != nil {
		return HorizonToday
	}
	return h
}

// configDir returns ~/.config/tasks, or the working directory when the
// home directory cannot be resolved.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tasks")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasks/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Server: ServerConfig{
			BaseURL:    "http://localhost:3000",
			TimeoutSec: 30,
		},
		Storage: StorageConfig{
			DBPath: filepath.Join(dir, "tasks.db"),
		},
		Display: DisplayConfig{
			Horizon: HorizonToday.String(),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "tasks.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Values may be overridden by TASKS_* environment variables
// (e.g., TASKS_SERVER_BASE_URL). If the file does not exist, defaults and
// environment overrides are used.
func LoadConfig(path string) (*AppConfig, error) {
	defaults := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values and so that
	// AutomaticEnv knows which keys exist.
	v.SetDefault("server.base_url", defaults.Server.BaseURL)
	v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
	v.SetDefault("storage.db_path", defaults.Storage.DBPath)
	v.SetDefault("display.horizon", defaults.Display.Horizon)
	v.SetDefault("display.refresh_interval_sec", defaults.Display.RefreshIntervalSec)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	if cfg.Server.BaseURL == "" {
		return nil, fmt.Errorf("parsing config %s: server.base_url is empty", path)
	}
	if _, err := ParseHorizon(cfg.Display.Horizon); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
