// Package config resolves courseway settings from flags, environment
// variables and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/courseway/internal/catalog"
)

// EnvPrefix prefixes every environment override, e.g. COURSEWAY_LOG_LEVEL.
const EnvPrefix = "COURSEWAY"

// Config keys.
const (
	KeyDB           = "db"
	KeyStorageKey   = "storage_key"
	KeyMultiLevel   = "multi_level"
	KeyDefaultLevel = "default_level"
	KeyContentDir   = "content_dir"
	KeyLogFile      = "log_file"
	KeyLogLevel     = "log_level"
	KeyLogStderr    = "log_stderr"
)

type Config struct {
	DB           string `mapstructure:"db"`
	StorageKey   string `mapstructure:"storage_key"`
	MultiLevel   bool   `mapstructure:"multi_level"`
	DefaultLevel string `mapstructure:"default_level"`
	ContentDir   string `mapstructure:"content_dir"`
	LogFile      string `mapstructure:"log_file"`
	LogLevel     string `mapstructure:"log_level"`
	LogStderr    bool   `mapstructure:"log_stderr"`
}

// New returns a viper instance with courseway defaults and environment
// lookups configured. Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyStorageKey, "")
	v.SetDefault(KeyMultiLevel, true)
	v.SetDefault(KeyDefaultLevel, string(catalog.LevelStandard))
	v.SetDefault(KeyContentDir, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogStderr, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads config.yaml from dir when present and unmarshals the merged
// settings. A missing config file is not an error.
func Load(v *viper.Viper, dir string) (*Config, error) {
	if dir != "" {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, ok := catalog.ParseLevel(cfg.DefaultLevel); !ok {
		return nil, fmt.Errorf("default_level %q: want one of beginner, standard, advanced", cfg.DefaultLevel)
	}
	return &cfg, nil
}

// Level returns the configured default level.
func (c *Config) Level() catalog.Level {
	level, _ := catalog.ParseLevel(c.DefaultLevel)
	return level
}

// DefaultDir resolves the config directory:
// $XDG_CONFIG_HOME/courseway, else ~/.config/courseway.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "courseway")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "courseway")
}
