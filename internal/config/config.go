// Package config provides configuration management for the journal client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"trade-journal/internal/logging"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Capital CapitalConfig `mapstructure:"capital"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RateLimit  float64       `mapstructure:"rate_limit"` // requests per second
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`

	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"`
}

// CapitalConfig holds the capital baseline.
type CapitalConfig struct {
	// Baseline overrides the transfer-derived baseline when positive.
	// Kept as text so rupee amounts never pass through float64.
	Baseline string `mapstructure:"baseline"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
	PageSize     int  `mapstructure:"page_size"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// StoreConfig holds snapshot store configuration.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-journal"
	}
	return filepath.Join(home, ".config", "trade-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := loadDotEnv(configDir); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.rate_limit", 5.0)
	v.SetDefault("api.cache_ttl", 30*time.Second)
	v.SetDefault("api.breaker_threshold", 5)
	v.SetDefault("api.breaker_cooldown", 30*time.Second)
	v.SetDefault("capital.baseline", "0")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(configDir, "logs", "journal.log"))
	v.SetDefault("log.console", false)
	v.SetDefault("store.enabled", true)
	v.SetDefault("store.path", filepath.Join(configDir, "journal.db"))
}

// loadDotEnv exports JOURNAL_* variables from <configDir>/.env. Variables
// already set in the environment win.
func loadDotEnv(configDir string) error {
	err := godotenv.Load(filepath.Join(configDir, ".env"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .env: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JOURNAL_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("JOURNAL_BASELINE_CAPITAL"); v != "" {
		cfg.Capital.Baseline = v
	}
	if v := os.Getenv("JOURNAL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("api.max_retries must be non-negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be non-negative")
	}
	if c.API.BreakerThreshold < 0 {
		return fmt.Errorf("api.breaker_threshold must be non-negative")
	}
	if c.Capital.Baseline != "" {
		baseline, err := decimal.NewFromString(c.Capital.Baseline)
		if err != nil {
			return fmt.Errorf("capital.baseline must be a number, got %q", c.Capital.Baseline)
		}
		if baseline.IsNegative() {
			return fmt.Errorf("capital.baseline must be non-negative")
		}
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive")
	}
	return nil
}

// BaselineAmount parses the capital baseline. Empty or malformed values are
// zero.
func (c CapitalConfig) BaselineAmount() decimal.Decimal {
	d, err := decimal.NewFromString(c.Baseline)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LoggingConfig converts the log section to a logging configuration.
func (c *Config) LoggingConfig() logging.LogConfig {
	lc := logging.DefaultLogConfig()
	lc.Level = c.Log.Level
	lc.Console = c.Log.Console
	lc.FilePath = c.Log.File
	lc.File = c.Log.File != ""
	return lc
}
