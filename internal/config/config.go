// Package config provides application configuration with multi-source
// priority: environment variables override ~/.iconforge/config.yaml, which
// overrides built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidOutputDir indicates the output directory value is unusable.
	ErrInvalidOutputDir = errors.New("invalid output directory")

	// ErrMissingAssistantCommand indicates CLI generation was requested
	// without a configured assistant command.
	ErrMissingAssistantCommand = errors.New("missing assistant command")

	// ErrInvalidSessionTTL indicates a negative session TTL.
	ErrInvalidSessionTTL = errors.New("invalid session TTL")

	// ErrInvalidSessionCapacity indicates a negative session capacity.
	ErrInvalidSessionCapacity = errors.New("invalid session capacity")
)

// Config stores application configuration.
type Config struct {
	// OutputDir is where saved icons land when the caller does not pass an
	// explicit directory.
	OutputDir string `mapstructure:"output_dir"`

	// AssistantCommand is the external CLI AI assistant invoked by
	// `iconforge generate`; AssistantArgs are prepended before the prompt.
	AssistantCommand string   `mapstructure:"assistant_command"`
	AssistantArgs    []string `mapstructure:"assistant_args"`

	// Model overrides model-name detection for multimodal gating.
	// ForceMultimodal, when set in config, pins the detector's answer.
	Model           string `mapstructure:"model"`
	ForceMultimodal *bool  `mapstructure:"force_multimodal"`

	// Session table bounds. Zero means package defaults.
	SessionCapacity   int `mapstructure:"session_capacity"`
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes"`

	// Search settings for the reference-image search collaborator.
	SearchUserAgent   string `mapstructure:"search_user_agent"`
	SearchMaxResults  int    `mapstructure:"search_max_results"`
	SearchPerSecond   int    `mapstructure:"search_per_second"`
	SearchDownloadDir string `mapstructure:"search_download_dir"`

	// Log settings.
	LogLevel string `mapstructure:"log_level"`
	LogJSON  bool   `mapstructure:"log_json"`
}

// Load reads configuration from ~/.iconforge/config.yaml plus the
// environment and validates it.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".iconforge")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v, home)
	v.SetEnvPrefix("ICONFORGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("output_dir", filepath.Join(home, "icons"))
	v.SetDefault("assistant_command", "claude")
	v.SetDefault("assistant_args", []string{"-p"})
	v.SetDefault("session_capacity", 0)
	v.SetDefault("session_ttl_minutes", 0)
	v.SetDefault("search_user_agent", "iconforge/1.0")
	v.SetDefault("search_max_results", 5)
	v.SetDefault("search_per_second", 2)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// Validate checks value ranges; it runs immediately after Load (fail-fast).
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidOutputDir)
	}
	if c.SessionCapacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSessionCapacity, c.SessionCapacity)
	}
	if c.SessionTTLMinutes < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSessionTTL, c.SessionTTLMinutes)
	}
	return nil
}

// Level parses the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
