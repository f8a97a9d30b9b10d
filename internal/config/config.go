// Package config loads the tool configuration from environment variables
// (prefix COREMAG) merged with an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete tool configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Format   FormatConfig   `yaml:"format" envconfig:"FORMAT"`
	Assembly AssemblyConfig `yaml:"assembly" envconfig:"ASSEMBLY"`
}

// LoggingConfig controls log level and the optional Seq sink.
type LoggingConfig struct {
	Level     string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	AddSource bool   `yaml:"add_source" envconfig:"ADD_SOURCE" default:"false"`
	SeqURL    string `yaml:"seq_url" envconfig:"SEQ_URL" validate:"omitempty,url"`
}

// FormatConfig selects the 2G format revision to parse against.
type FormatConfig struct {
	Version string `yaml:"version" envconfig:"VERSION" default:"2G-1" validate:"required"`
}

// AssemblyConfig carries the default overlap strategy for assembly runs.
type AssemblyConfig struct {
	Strategy string `yaml:"strategy" envconfig:"STRATEGY" validate:"omitempty,oneof=truncate-previous truncate-next"`
}

// Load builds the configuration: defaults, overlaid by the YAML file named
// by COREMAG_CONFIG (when set and readable), overlaid by explicitly set
// environment variables, then validated.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("COREMAG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := os.Getenv("COREMAG_CONFIG"); path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg = mergeConfigs(cfg, *fileCfg)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays file values onto the env-derived config. An
// explicitly set environment variable always wins over the file; otherwise
// a non-empty file value replaces the default.
func mergeConfigs(env, file Config) Config {
	out := env
	out.Logging.Level = pick("COREMAG_LOGGING_LEVEL", env.Logging.Level, file.Logging.Level)
	out.Logging.SeqURL = pick("COREMAG_LOGGING_SEQ_URL", env.Logging.SeqURL, file.Logging.SeqURL)
	out.Format.Version = pick("COREMAG_FORMAT_VERSION", env.Format.Version, file.Format.Version)
	out.Assembly.Strategy = pick("COREMAG_ASSEMBLY_STRATEGY", env.Assembly.Strategy, file.Assembly.Strategy)
	if _, set := os.LookupEnv("COREMAG_LOGGING_ADD_SOURCE"); !set && file.Logging.AddSource {
		out.Logging.AddSource = true
	}
	return out
}

func pick(envKey, envVal, fileVal string) string {
	if _, set := os.LookupEnv(envKey); set {
		return envVal
	}
	if fileVal != "" {
		return fileVal
	}
	return envVal
}
