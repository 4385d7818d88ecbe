// SPDX-License-Identifier: EPL-2.0

// Package config loads the peaks command configuration from TOML or YAML
// files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ik5/peaks/dataset"
	"github.com/ik5/peaks/zoom"
)

// Environment variables read by ApplyEnv.
const (
	EnvDataURI       = "PEAKS_DATA_URI"
	EnvDefaultFormat = "PEAKS_DEFAULT_FORMAT"
	EnvLogLevel      = "PEAKS_LOG_LEVEL"
)

var ErrUnsupportedFile = errors.New("unsupported config file type")

type Config struct {
	DataURI              dataset.URI `toml:"data_uri" yaml:"data_uri"`
	DefaultDataURIFormat string      `toml:"default_data_uri_format" yaml:"default_data_uri_format"`
	ZoomLevels           []int       `toml:"zoom_levels" yaml:"zoom_levels"`

	// Media is a file path or an http(s) URL.
	Media    string `toml:"media" yaml:"media"`
	LogLevel string `toml:"log_level" yaml:"log_level"`

	HTTP     HTTPConfig     `toml:"http" yaml:"http"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Generate GenerateConfig `toml:"generate" yaml:"generate"`
}

type HTTPConfig struct {
	Timeout string `toml:"timeout" yaml:"timeout"`
}

type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
	Dir  string `toml:"dir" yaml:"dir"`
}

type GenerateConfig struct {
	Bits          int  `toml:"bits" yaml:"bits"`
	SplitChannels bool `toml:"split_channels" yaml:"split_channels"`
}

func Default() *Config {
	return &Config{
		DefaultDataURIFormat: string(dataset.FormatJSON),
		ZoomLevels:           append([]int(nil), zoom.DefaultLevels...),
		LogLevel:             "info",
		HTTP:                 HTTPConfig{Timeout: "30s"},
		Server:               ServerConfig{Addr: ":8080", Dir: "."},
		Generate:             GenerateConfig{Bits: 8},
	}
}

// LoadFrom reads path over the defaults. The decoder is chosen by extension
// (.toml, .yaml or .yml). A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	var unmarshal func([]byte, any) error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		unmarshal = toml.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values. PEAKS_DATA_URI replaces the whole data_uri
// table with a bare URL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDataURI); v != "" {
		c.DataURI = dataset.URI{URL: v}
	}
	if v := os.Getenv(EnvDefaultFormat); v != "" {
		c.DefaultDataURIFormat = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if _, err := dataset.ParseFormat(c.DefaultDataURIFormat); err != nil {
		return fmt.Errorf("default_data_uri_format: %w", err)
	}

	if err := zoom.ValidateLevels(c.ZoomLevels); err != nil {
		return fmt.Errorf("zoom_levels: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if d, err := time.ParseDuration(c.HTTP.Timeout); err != nil || d < 0 {
		return fmt.Errorf("http.timeout must be a non-negative duration, got %q", c.HTTP.Timeout)
	}

	if c.Generate.Bits != 8 && c.Generate.Bits != 16 {
		return fmt.Errorf("generate.bits must be 8 or 16, got %d", c.Generate.Bits)
	}

	return nil
}

// Format is the parsed default data format. Call Validate first.
func (c *Config) Format() dataset.Format {
	f, _ := dataset.ParseFormat(c.DefaultDataURIFormat)
	return f
}

// Timeout is the parsed HTTP timeout; zero means none. Call Validate first.
func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.HTTP.Timeout)
	return d
}
