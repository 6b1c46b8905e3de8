// Package config defines the mlswarp configuration and its loader.
// Configuration is resolved from config files, environment variables,
// command-line flags and defaults, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MeKo-Tech/mlswarp/internal/mls"
)

// Config represents the complete configuration for the mlswarp CLI.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Warp settings
	Warp WarpConfig `mapstructure:"warp" yaml:"warp" json:"warp"`

	// Output settings
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
}

// WarpConfig contains the deformation settings.
type WarpConfig struct {
	// Mode selects the MLS transform class: affine, similarity or rigid.
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`

	// Subresolution is the sparse-grid anchor spacing in pixels; 1 warps
	// every pixel through the full solver.
	Subresolution int `mapstructure:"subresolution" yaml:"subresolution" json:"subresolution"`

	// Workers is the row worker pool size; 0 uses all CPUs.
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`

	// MaxWidth/MaxHeight fit the input image into a bounding box before
	// warping; 0 disables fitting.
	MaxWidth  int `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
	MaxHeight int `mapstructure:"max_height" yaml:"max_height" json:"max_height"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	// File is the output image path; the extension picks the format.
	File string `mapstructure:"file" yaml:"file" json:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Warp: WarpConfig{
			Mode:          "rigid",
			Subresolution: 1,
			Workers:       0,
			MaxWidth:      0,
			MaxHeight:     0,
		},
		Output: OutputConfig{
			File: "warped.png",
		},
	}
}

// Validate checks the configuration for invalid values. It enforces the
// same contract rules as the warp library boundary so bad input fails
// before any pixel work starts.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn or error)", c.LogLevel)
	}
	if _, err := mls.ParseKind(c.Warp.Mode); err != nil {
		return err
	}
	if c.Warp.Subresolution < 1 {
		return fmt.Errorf("invalid subresolution factor: %d (must be >= 1)", c.Warp.Subresolution)
	}
	if c.Warp.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d (must be >= 0)", c.Warp.Workers)
	}
	if c.Warp.MaxWidth < 0 || c.Warp.MaxHeight < 0 {
		return fmt.Errorf("invalid size limit: %dx%d (must be >= 0)", c.Warp.MaxWidth, c.Warp.MaxHeight)
	}
	if c.Output.File == "" {
		return errors.New("output file must not be empty")
	}
	return nil
}

// Kind returns the parsed transform kind. Validate must have succeeded.
func (c *Config) Kind() mls.Kind {
	k, _ := mls.ParseKind(c.Warp.Mode)
	return k
}
