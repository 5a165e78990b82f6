package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Provider ProviderConfig `toml:"provider"`
	RefData  RefDataConfig  `toml:"refdata"`
	Answers  AnswersConfig  `toml:"answers"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	ShutdownTimeoutSec int      `toml:"shutdown_timeout_seconds"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ProviderConfig represents the flight-data provider configuration
type ProviderConfig struct {
	BaseURL           string `toml:"base_url"`
	APIToken          string `toml:"api_token"`
	APITokenEnv       string `toml:"api_token_env"`
	RequestTimeoutSec int    `toml:"request_timeout_seconds"`
}

// RefDataConfig represents the reference-data configuration
type RefDataConfig struct {
	// SQLitePath points at an optional reference database holding
	// airport timezone and carrier code overrides. Empty means the
	// built-in tables are used as-is.
	SQLitePath string `toml:"sqlite_path"`
}

// AnswersConfig represents answer-rendering configuration
type AnswersConfig struct {
	// DefaultTimezone is used when neither the caller nor the flight
	// record resolves to a timezone. Empty means UTC.
	DefaultTimezone string `toml:"default_timezone"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
			ShutdownTimeoutSec: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Provider: ProviderConfig{
			BaseURL:           "https://fr24api.flightradar24.com/api",
			APITokenEnv:       "FR24_API_TOKEN",
			RequestTimeoutSec: 30,
		},
	}
}

// Load reads the configuration from the given TOML file, applying
// defaults for anything the file does not set. A missing file is not an
// error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveAPIToken returns the provider credential, preferring the value
// set in the config file over the environment variable.
func (c *Config) ResolveAPIToken() string {
	if c.Provider.APIToken != "" {
		return c.Provider.APIToken
	}
	if c.Provider.APITokenEnv != "" {
		return os.Getenv(c.Provider.APITokenEnv)
	}
	return ""
}

// RequestTimeout returns the provider request timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Provider.RequestTimeoutSec) * time.Second
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base_url must not be empty")
	}
	if c.Provider.RequestTimeoutSec <= 0 {
		return fmt.Errorf("provider request_timeout_seconds must be positive")
	}
	return nil
}
