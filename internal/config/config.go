// Package config loads learnboard settings from defaults, an optional YAML
// file, LEARNBOARD_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/learnboard/internal/apperr"
)

// EnvPrefix prefixes every environment variable, e.g. LEARNBOARD_LOG_LEVEL.
const EnvPrefix = "LEARNBOARD"

// Keys used with viper and bound to flags.
const (
	KeyDB              = "db"
	KeyLogFile         = "log.file"
	KeyLogLevel        = "log.level"
	KeyUserEmail       = "user.email"
	KeyDefaultDuration = "assessment.default_duration"
)

// Config holds all settings.
type Config struct {
	DB         string           `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	User       UserConfig       `mapstructure:"user"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// UserConfig identifies who signs in on startup.
type UserConfig struct {
	Email string `mapstructure:"email"`
}

// AssessmentConfig holds attempt settings.
type AssessmentConfig struct {
	// DefaultDuration is the time limit in minutes for assessments that
	// declare none.
	DefaultDuration int `mapstructure:"default_duration"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DB:         "memory",
		Log:        LogConfig{Level: "info"},
		User:       UserConfig{Email: "alex@example.com"},
		Assessment: AssessmentConfig{DefaultDuration: 20},
	}
}

// New returns a viper instance preloaded with defaults and environment
// bindings. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault(KeyDB, d.DB)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyUserEmail, d.User.Email)
	v.SetDefault(KeyDefaultDuration, d.Assessment.DefaultDuration)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes the merged settings. An explicit
// path must exist; otherwise config.yaml in DefaultDir is used if present.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable fallback.
func (c Config) Validate() error {
	if c.Assessment.DefaultDuration <= 0 {
		return apperr.InvalidInput("load config", "%s must be positive, got %d", KeyDefaultDuration, c.Assessment.DefaultDuration)
	}
	return nil
}

// DefaultDir resolves the config directory:
// $XDG_CONFIG_HOME/learnboard or ~/.config/learnboard.
func DefaultDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "learnboard"), nil
}
