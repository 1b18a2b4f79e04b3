// Package config holds the settings of the upcean command and loads them
// from a yaml file, UPCEAN_* environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/ericlevine/upcean"
)

// Input formats understood by the decode command.
const (
	InputBits = "bits"
	InputRuns = "runs"
)

// Output formats understood by the decode command.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config represents the complete configuration for the upcean command.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Decode DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`
	Input  InputConfig  `mapstructure:"input" yaml:"input" json:"input"`
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
	Encode EncodeConfig `mapstructure:"encode" yaml:"encode" json:"encode"`
}

// DecodeConfig controls which symbologies are tried and how hard.
type DecodeConfig struct {
	// Formats names the formats to look for; empty means all of them.
	Formats      []string `mapstructure:"formats" yaml:"formats" json:"formats"`
	TryReverse   bool     `mapstructure:"try_reverse" yaml:"try_reverse" json:"try_reverse"`
	AlsoInverted bool     `mapstructure:"also_inverted" yaml:"also_inverted" json:"also_inverted"`
	Workers      int      `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// InputConfig describes how rows are read.
type InputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// OutputConfig describes how results are written.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Stats  bool   `mapstructure:"stats" yaml:"stats" json:"stats"`
}

// EncodeConfig controls rendering of encoded rows.
type EncodeConfig struct {
	ModuleWidth int `mapstructure:"module_width" yaml:"module_width" json:"module_width"`
	QuietZone   int `mapstructure:"quiet_zone" yaml:"quiet_zone" json:"quiet_zone"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Decode: DecodeConfig{
			Formats:      []string{},
			TryReverse:   true,
			AlsoInverted: false,
			Workers:      runtime.NumCPU(),
		},
		Input: InputConfig{
			Format: InputBits,
		},
		Output: OutputConfig{
			Format: OutputTable,
			Stats:  false,
		},
		Encode: EncodeConfig{
			ModuleWidth: 1,
			QuietZone:   10,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if _, err := c.Formats(); err != nil {
		return fmt.Errorf("invalid decode.formats: %w", err)
	}
	if c.Decode.Workers <= 0 {
		return fmt.Errorf("invalid decode.workers: %d (must be positive)", c.Decode.Workers)
	}

	validInputs := []string{InputBits, InputRuns}
	if !slices.Contains(validInputs, c.Input.Format) {
		return fmt.Errorf("invalid input format: %s (must be one of: %s)", c.Input.Format, strings.Join(validInputs, ", "))
	}

	validOutputs := []string{OutputTable, OutputJSON, OutputYAML}
	if !slices.Contains(validOutputs, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(validOutputs, ", "))
	}

	if c.Encode.ModuleWidth <= 0 {
		return fmt.Errorf("invalid encode.module_width: %d (must be positive)", c.Encode.ModuleWidth)
	}
	if c.Encode.QuietZone < 0 {
		return fmt.Errorf("invalid encode.quiet_zone: %d (must not be negative)", c.Encode.QuietZone)
	}
	return nil
}

// Formats parses Decode.Formats. A single entry may hold a comma-separated
// list, as it does when it comes from an environment variable.
func (c *Config) Formats() ([]upcean.Format, error) {
	var formats []upcean.Format
	for _, entry := range c.Decode.Formats {
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			f, err := upcean.ParseFormat(name)
			if err != nil {
				return nil, err
			}
			if !slices.Contains(formats, f) {
				formats = append(formats, f)
			}
		}
	}
	return formats, nil
}

// DecodeOptions converts the decode settings for the readers.
func (c *Config) DecodeOptions() (*upcean.DecodeOptions, error) {
	formats, err := c.Formats()
	if err != nil {
		return nil, err
	}
	return &upcean.DecodeOptions{
		PossibleFormats: formats,
		TryReverse:      c.Decode.TryReverse,
		AlsoInverted:    c.Decode.AlsoInverted,
	}, nil
}

// EncodeOptions converts the encode settings for the writers.
func (c *Config) EncodeOptions() *upcean.EncodeOptions {
	margin := c.Encode.QuietZone
	return &upcean.EncodeOptions{
		Margin:      &margin,
		ModuleWidth: c.Encode.ModuleWidth,
	}
}

// SlogLevel returns the log level to use; Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
