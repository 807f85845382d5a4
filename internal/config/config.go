package config

import (
	"flag"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sashakarcz/genpass/internal/webconfig"
)

// DefaultCost matches the salt rounds of the bcrypt gensalt default.
const DefaultCost = 12

// Config represents the complete tool configuration
type Config struct {
	Hash          HashConfig
	Output        OutputConfig
	Observability ObservabilityConfig
}

// HashConfig holds bcrypt settings
type HashConfig struct {
	Cost int
}

// OutputConfig controls the rendered snippet
type OutputConfig struct {
	Key string
}

// ObservabilityConfig holds logging settings
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
}

// RegisterFlags binds the configuration fields to fs
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Hash.Cost, "cost", DefaultCost, "bcrypt cost")
	fs.StringVar(&c.Output.Key, "key", webconfig.DefaultKey, "top-level key of the printed snippet")
	fs.StringVar(&c.Observability.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&c.Observability.LogFormat, "log-format", "text", "log format (text, json)")
}

// Parse parses args into a Config and returns the remaining positional arguments
func Parse(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	var cfg Config
	cfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, fs.Args(), nil
}

// setDefaults sets default values for fields left empty. Cost has no zero
// default; an explicit -cost 0 is rejected by Validate.
func (c *Config) setDefaults() {
	if c.Output.Key == "" {
		c.Output.Key = webconfig.DefaultKey
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "warn"
	}
	if c.Observability.LogFormat == "" {
		c.Observability.LogFormat = "text"
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Hash.Cost < bcrypt.MinCost || c.Hash.Cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Observability.LogLevel] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Observability.LogFormat] {
		return fmt.Errorf("log_format must be one of: json, text")
	}

	return nil
}
