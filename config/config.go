package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from an optional yaml file
// and QUIZCRAFTER_* environment variables.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
		Mode string `mapstructure:"mode"`
	} `mapstructure:"server"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Log struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"log"`
}

// Load reads configuration. A missing config file is fine; defaults and
// environment variables cover the local-desktop case.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("server.port", "8390")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "")
	v.SetDefault("log.dir", "logs")

	v.SetEnvPrefix("QUIZCRAFTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Database.Path == "" {
		path, err := defaultDatabasePath()
		if err != nil {
			return nil, err
		}
		cfg.Database.Path = path
	}

	return &cfg, nil
}

// defaultDatabasePath puts the store under the user's config directory,
// e.g. ~/.config/quizcrafter/quizcrafter.sqlite on Linux.
func defaultDatabasePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "quizcrafter", "quizcrafter.sqlite"), nil
}
