// Package config loads hybridoc settings from defaults, an optional YAML
// file and HYBRIDOC_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gardar/hybridoc/pkg/gdocai"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. HYBRIDOC_DOCUMENT_AI_PROJECT_ID.
const EnvPrefix = "HYBRIDOC"

// Config is the full hybridoc configuration
type Config struct {
	DocumentAI DocumentAIConfig `mapstructure:"document_ai" yaml:"document_ai"`
	Limits     LimitsConfig     `mapstructure:"limits" yaml:"limits"`
	Render     RenderConfig     `mapstructure:"render" yaml:"render"`
	LogLevel   string           `mapstructure:"log_level" yaml:"log_level"`
}

// DocumentAIConfig addresses the Document AI processor
type DocumentAIConfig struct {
	ProjectID       string        `mapstructure:"project_id" yaml:"project_id"`
	Location        string        `mapstructure:"location" yaml:"location"`
	ProcessorID     string        `mapstructure:"processor_id" yaml:"processor_id"`
	CredentialsFile string        `mapstructure:"credentials_file" yaml:"credentials_file"`
	MaxAttempts     int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	RetryDelay      time.Duration `mapstructure:"retry_delay" yaml:"-"`
}

// LimitsConfig bounds the input accepted by convert
type LimitsConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes"`
	MaxPages int   `mapstructure:"max_pages" yaml:"max_pages"`
}

// RenderConfig controls document assembly and serialization
type RenderConfig struct {
	Workers  int    `mapstructure:"workers" yaml:"workers"`
	PageSize string `mapstructure:"page_size" yaml:"page_size"`
	Layers   bool   `mapstructure:"layers" yaml:"layers"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		DocumentAI: DocumentAIConfig{
			Location:    "us",
			MaxAttempts: 3,
			RetryDelay:  2 * time.Second,
		},
		Limits: LimitsConfig{
			MaxBytes: 15 * 1024 * 1024,
			MaxPages: 10,
		},
		Render: RenderConfig{
			Workers:  1,
			PageSize: "A4",
		},
		LogLevel: "info",
	}
}

// Load reads the configuration. cfgFile may be empty, in which case
// ./hybridoc.yaml and $HOME/.hybridoc/hybridoc.yaml are tried; a missing file
// is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("hybridoc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hybridoc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("document_ai.project_id", d.DocumentAI.ProjectID)
	v.SetDefault("document_ai.location", d.DocumentAI.Location)
	v.SetDefault("document_ai.processor_id", d.DocumentAI.ProcessorID)
	v.SetDefault("document_ai.credentials_file", d.DocumentAI.CredentialsFile)
	v.SetDefault("document_ai.max_attempts", d.DocumentAI.MaxAttempts)
	v.SetDefault("document_ai.retry_delay", d.DocumentAI.RetryDelay.String())
	v.SetDefault("limits.max_bytes", d.Limits.MaxBytes)
	v.SetDefault("limits.max_pages", d.Limits.MaxPages)
	v.SetDefault("render.workers", d.Render.Workers)
	v.SetDefault("render.page_size", d.Render.PageSize)
	v.SetDefault("render.layers", d.Render.Layers)
	v.SetDefault("log_level", d.LogLevel)
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if c.Limits.MaxBytes <= 0 {
		return fmt.Errorf("limits.max_bytes must be positive, got %d", c.Limits.MaxBytes)
	}
	if c.Limits.MaxPages <= 0 {
		return fmt.Errorf("limits.max_pages must be positive, got %d", c.Limits.MaxPages)
	}
	if c.DocumentAI.RetryDelay < 0 {
		return fmt.Errorf("document_ai.retry_delay must not be negative")
	}
	switch strings.ToLower(c.Render.PageSize) {
	case "a4", "letter":
	default:
		return fmt.Errorf("render.page_size must be A4 or Letter, got %q", c.Render.PageSize)
	}
	return nil
}

// GDocAI converts the Document AI section into a client config
func (c *Config) GDocAI() *gdocai.Config {
	return &gdocai.Config{
		ProjectID:       c.DocumentAI.ProjectID,
		Location:        c.DocumentAI.Location,
		ProcessorID:     c.DocumentAI.ProcessorID,
		CredentialsFile: c.DocumentAI.CredentialsFile,
		MaxAttempts:     c.DocumentAI.MaxAttempts,
		RetryDelay:      c.DocumentAI.RetryDelay,
	}
}

// MarshalYAML writes the retry delay as a duration string
func (d DocumentAIConfig) MarshalYAML() (interface{}, error) {
	return struct {
		ProjectID       string `yaml:"project_id"`
		Location        string `yaml:"location"`
		ProcessorID     string `yaml:"processor_id"`
		CredentialsFile string `yaml:"credentials_file"`
		MaxAttempts     int    `yaml:"max_attempts"`
		RetryDelay      string `yaml:"retry_delay"`
	}{d.ProjectID, d.Location, d.ProcessorID, d.CredentialsFile, d.MaxAttempts, d.RetryDelay.String()}, nil
}

// YAML returns the configuration in the format Load reads
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}
