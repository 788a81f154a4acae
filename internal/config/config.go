// Package config loads settings for the qrscan command and service.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ericlevine/qrscan"
)

// Config is the complete configuration of the qrscan command. It is read
// from a qrscan.yaml file, QRSCAN_ environment variables and flags, in
// increasing order of precedence.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Decode DecodeConfig `mapstructure:"decode" yaml:"decode" json:"decode"`
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// DecodeConfig maps onto qrscan.Options.
type DecodeConfig struct {
	Workers      int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	MaxDimension int  `mapstructure:"max_dimension" yaml:"max_dimension" json:"max_dimension"`
	NoMirror     bool `mapstructure:"no_mirror" yaml:"no_mirror" json:"no_mirror"`
	// MaxPixels caps the declared size of input images; 0 uses the
	// library default and a negative value disables the cap.
	MaxPixels int `mapstructure:"max_pixels" yaml:"max_pixels" json:"max_pixels"`
	// TimeoutSec bounds a single image; 0 means no limit.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
}

// OutputConfig controls how scan results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	outputFormats = []string{"text", "json", "yaml"}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Decode: DecodeConfig{
			Workers: 1,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			MaxUploadMB:     20,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (must be one of: %s)", c.Output.Format, strings.Join(outputFormats, ", "))
	}
	if c.Decode.Workers < 0 {
		return fmt.Errorf("invalid decode workers: %d (must not be negative)", c.Decode.Workers)
	}
	if c.Decode.MaxDimension < 0 {
		return fmt.Errorf("invalid max dimension: %d (must not be negative)", c.Decode.MaxDimension)
	}
	if c.Decode.TimeoutSec < 0 {
		return fmt.Errorf("invalid decode timeout: %d (must not be negative)", c.Decode.TimeoutSec)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout: %d (must be positive)", c.Server.TimeoutSec)
	}
	return nil
}

// Options returns the decode options.
func (c *Config) Options() *qrscan.Options {
	return &qrscan.Options{
		Workers:      c.Decode.Workers,
		MaxDimension: c.Decode.MaxDimension,
		NoMirror:     c.Decode.NoMirror,
		MaxPixels:    c.Decode.MaxPixels,
	}
}

// DecodeTimeout is the per-image budget, zero for none.
func (c *Config) DecodeTimeout() time.Duration {
	return time.Duration(c.Decode.TimeoutSec) * time.Second
}

// Addr is the listen address of the service.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
