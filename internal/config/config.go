package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "ipcacli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sidra    SidraConfig    `yaml:"sidra" envconfig:"SIDRA"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// SidraConfig contains the SIDRA API client configuration
type SidraConfig struct {
	BaseURL          string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	TableID          int           `yaml:"table_id" envconfig:"TABLE_ID" validate:"min=1"`
	VariableID       int           `yaml:"variable_id" envconfig:"VARIABLE_ID" validate:"min=1"`
	TerritorialLevel string        `yaml:"territorial_level" envconfig:"TERRITORIAL_LEVEL" validate:"required"`
	Periods          []string      `yaml:"periods" envconfig:"PERIODS" validate:"min=1,dive,required"`
	Timeout          time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	MaxRetries       int           `yaml:"max_retries" envconfig:"MAX_RETRIES" validate:"min=0,max=10"`
	RetryBackoff     time.Duration `yaml:"retry_backoff" envconfig:"RETRY_BACKOFF"`
	RateLimit        float64       `yaml:"rate_limit" envconfig:"RATE_LIMIT" validate:"gt=0"`
	UserAgent        string        `yaml:"user_agent" envconfig:"USER_AGENT" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PipelineConfig contains the transform and output configuration
type PipelineConfig struct {
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	FixtureFile  string `yaml:"fixture_file" envconfig:"FIXTURE_FILE"`
	WindowMonths int    `yaml:"window_months" envconfig:"WINDOW_MONTHS" validate:"min=1"`
}

// Load loads configuration from an optional YAML file and environment
// variables. Environment variables (prefix IPCA) take precedence over the
// file; the file takes precedence over defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if path := resolveConfigFile(configFile); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", path)
		}
	}

	if err := envconfig.Process("IPCA", cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file over cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return err
	}

	// validator/v10 treats durations as plain int64, so bound them here
	if c.Sidra.Timeout <= 0 {
		return fmt.Errorf("sidra timeout must be positive, got %s", c.Sidra.Timeout)
	}
	if c.Sidra.MaxRetries > 0 && c.Sidra.RetryBackoff <= 0 {
		return fmt.Errorf("retry backoff must be positive when retries are enabled")
	}

	if c.Logging.Format != "json" {
		// Always JSON for machine-readable run logs
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "console" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/ipca.log"
	}

	return nil
}

// resolveConfigFile returns the config file to load, preferring an explicit
// path and falling back to common locations. A path that does not exist is
// skipped so the tool still runs on defaults and environment alone.
func resolveConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration. Table 1737 variable 63 is the
// monthly IPCA variation at the national territorial level.
func Default() *Config {
	return &Config{
		Sidra: SidraConfig{
			BaseURL:          "https://apisidra.ibge.gov.br",
			TableID:          1737,
			VariableID:       63,
			TerritorialLevel: "n1",
			Periods:          []string{"last 120", "all"},
			Timeout:          30 * time.Second,
			MaxRetries:       3,
			RetryBackoff:     2 * time.Second,
			RateLimit:        1,
			UserAgent:        "ipca-bot/1.0",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "both",
			FilePath:    "logs/ipca.log",
			Development: false,
		},
		Pipeline: PipelineConfig{
			WindowMonths: 24,
		},
	}
}
