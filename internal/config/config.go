// Package config loads service configuration from defaults, an
// optional YAML file and SHEETVIZ_* environment variables, in that
// order of precedence (later wins).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DataConfig contains the sheet source directory and preview bounds.
type DataConfig struct {
	Dir                string `yaml:"dir" envconfig:"DIR"`
	DefaultPreviewRows int    `yaml:"default_preview_rows" envconfig:"DEFAULT_PREVIEW_ROWS"`
	MaxPreviewRows     int    `yaml:"max_preview_rows" envconfig:"MAX_PREVIEW_ROWS"`
}

// SecurityConfig contains request protection configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/sheetviz.log",
		},
		Data: DataConfig{
			Dir:                "data",
			DefaultPreviewRows: 100,
			MaxPreviewRows:     1000,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SHEETVIZ_CONFIG_FILE (or ./sheetviz.yml when present), then
// environment variables.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("SHEETVIZ_CONFIG_FILE")
	if path == "" {
		path = "sheetviz.yml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("SHEETVIZ", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if c.Data.DefaultPreviewRows < 1 || c.Data.DefaultPreviewRows > c.Data.MaxPreviewRows {
		return fmt.Errorf("invalid preview row bounds: default %d, max %d",
			c.Data.DefaultPreviewRows, c.Data.MaxPreviewRows)
	}
	return nil
}
