// Package config loads sift configuration from YAML files, environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend names accepted in connection.backend.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config represents the root configuration structure
type Config struct {
	Connection ConnectionConfig `mapstructure:"connection"`
	Query      QueryConfig      `mapstructure:"query"`
	UI         UIConfig         `mapstructure:"ui"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ConnectionConfig holds database connection parameters.
// Host, Port, User, SSLMode and the pool settings apply to the postgres
// backend; Path applies to sqlite.
type ConnectionConfig struct {
	Backend      string `mapstructure:"backend"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	PoolMaxConns int    `mapstructure:"pool_max_conns"`
	PoolMinConns int    `mapstructure:"pool_min_conns"`
	Path         string `mapstructure:"path"`
}

// QueryConfig holds query execution settings
type QueryConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	Theme      string `mapstructure:"theme"`
	DateFormat string `mapstructure:"date_format"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from the YAML file and environment variables.
// Environment variables use the SIFT_ prefix (e.g. SIFT_CONNECTION_HOST).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/sift")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults and env cover it.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration values
func Validate(cfg *Config) error {
	switch cfg.Connection.Backend {
	case BackendPostgres:
		if cfg.Connection.Host == "" {
			return fmt.Errorf("connection.host cannot be empty")
		}
		if cfg.Connection.Port < 1 || cfg.Connection.Port > 65535 {
			return fmt.Errorf("connection.port must be between 1 and 65535, got %d", cfg.Connection.Port)
		}
		if cfg.Connection.Database == "" {
			return fmt.Errorf("connection.database cannot be empty")
		}

		validSSLModes := []string{"disable", "prefer", "require"}
		validMode := false
		for _, mode := range validSSLModes {
			if cfg.Connection.SSLMode == mode {
				validMode = true
				break
			}
		}
		if !validMode {
			return fmt.Errorf("connection.sslmode must be one of: %v, got %s", validSSLModes, cfg.Connection.SSLMode)
		}

		if cfg.Connection.PoolMaxConns < 1 {
			return fmt.Errorf("connection.pool_max_conns must be >= 1, got %d", cfg.Connection.PoolMaxConns)
		}
		if cfg.Connection.PoolMinConns < 0 {
			return fmt.Errorf("connection.pool_min_conns must be >= 0, got %d", cfg.Connection.PoolMinConns)
		}
		if cfg.Connection.PoolMaxConns < cfg.Connection.PoolMinConns {
			return fmt.Errorf("connection.pool_max_conns (%d) must be >= pool_min_conns (%d)",
				cfg.Connection.PoolMaxConns, cfg.Connection.PoolMinConns)
		}
	case BackendSQLite:
		if cfg.Connection.Path == "" {
			return fmt.Errorf("connection.path cannot be empty for the sqlite backend")
		}
	default:
		return fmt.Errorf("connection.backend must be %q or %q, got %q",
			BackendPostgres, BackendSQLite, cfg.Connection.Backend)
	}

	if cfg.Query.Timeout < 0 {
		return fmt.Errorf("query.timeout must be >= 0, got %v", cfg.Query.Timeout)
	}
	if cfg.Query.PageSize < 1 {
		return fmt.Errorf("query.page_size must be >= 1, got %d", cfg.Query.PageSize)
	}

	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLevels {
		if cfg.Logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("logging.level must be one of: %v, got %s", validLevels, cfg.Logging.Level)
	}

	return nil
}

// applyDefaults sets default configuration values
func applyDefaults() {
	viper.SetDefault("connection.backend", BackendPostgres)
	viper.SetDefault("connection.host", "localhost")
	viper.SetDefault("connection.port", 5432)
	viper.SetDefault("connection.database", "postgres")

	if user := os.Getenv("USER"); user != "" {
		viper.SetDefault("connection.user", user)
	} else {
		viper.SetDefault("connection.user", "postgres")
	}

	viper.SetDefault("connection.sslmode", "prefer")
	viper.SetDefault("connection.pool_max_conns", 10)
	viper.SetDefault("connection.pool_min_conns", 2)
	viper.SetDefault("connection.path", "")

	viper.SetDefault("query.timeout", "30s")
	viper.SetDefault("query.page_size", 100)

	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("ui.date_format", "2006-01-02 15:04:05")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
