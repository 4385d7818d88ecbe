// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/peaks/dataset"
	"github.com/ik5/peaks/zoom"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, zoom.DefaultLevels, cfg.ZoomLevels)
	assert.Equal(t, dataset.FormatJSON, cfg.Format())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, dataset.Local{}, cfg.DataURI.Source())
}

func TestLoadFrom_TOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "peaks.toml", `
default_data_uri_format = "arraybuffer"
zoom_levels = [256, 512]
media = "song.mp3"
log_level = "debug"

[data_uri]
arraybuffer = "http://localhost/sample.dat"
json = "http://localhost/sample.json"

[server]
addr = ":9000"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, dataset.Binary{URL: "http://localhost/sample.dat"}, cfg.DataURI.Source())
	assert.Equal(t, dataset.FormatBinary, cfg.Format())
	assert.Equal(t, []int{256, 512}, cfg.ZoomLevels)
	assert.Equal(t, "song.mp3", cfg.Media)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, ".", cfg.Server.Dir, "unset keys keep defaults")
}

func TestLoadFrom_YAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "peaks.yaml", `
data_uri:
  url: http://localhost/sample.dat
default_data_uri_format: binary
http:
  timeout: 5s
generate:
  bits: 16
  split_channels: true
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, dataset.BareURL{URL: "http://localhost/sample.dat"}, cfg.DataURI.Source())
	assert.Equal(t, dataset.FormatBinary, cfg.Format())
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, 16, cfg.Generate.Bits)
	assert.True(t, cfg.Generate.SplitChannels)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadFrom(writeFile(t, "peaks.ini", "x=1"))
	require.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = LoadFrom(writeFile(t, "bad.toml", "zoom_levels = ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.toml")

	_, err = LoadFrom(writeFile(t, "bad.yaml", "zoom_levels: {"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"bad format", func(c *Config) { c.DefaultDataURIFormat = "xml" }, "default_data_uri_format"},
		{"empty levels", func(c *Config) { c.ZoomLevels = nil }, "zoom_levels"},
		{"decreasing levels", func(c *Config) { c.ZoomLevels = []int{1024, 512} }, "zoom_levels"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad timeout", func(c *Config) { c.HTTP.Timeout = "soon" }, "http.timeout"},
		{"bad bits", func(c *Config) { c.Generate.Bits = 12 }, "generate.bits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// Not parallel: t.Setenv.
func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataURI, "http://localhost/env.json")
	t.Setenv(EnvDefaultFormat, "json")
	t.Setenv(EnvLogLevel, "warn")

	path := writeFile(t, "peaks.toml", `
default_data_uri_format = "arraybuffer"
log_level = "debug"

[data_uri]
arraybuffer = "http://localhost/file.dat"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	cfg.ApplyEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, dataset.BareURL{URL: "http://localhost/env.json"}, cfg.DataURI.Source())
	assert.Equal(t, dataset.FormatJSON, cfg.Format())
	assert.Equal(t, "warn", cfg.LogLevel)
}
