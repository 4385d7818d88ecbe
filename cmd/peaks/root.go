// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ik5/peaks/internal/config"
	"github.com/ik5/peaks/media"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "peaks",
		Short: "Waveform data for audio viewers",
		Long: `Resolve, generate and serve audiowaveform data files.

Examples:
  # Compute a waveform from an audio file
  peaks generate song.wav song.dat

  # Serve a directory of .dat and .json files
  peaks serve --dir ./waveforms

  # Resolve waveform data the way a viewer would
  peaks resolve --arraybuffer http://localhost:8080/song.dat`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "peaks.toml", "config file (.toml, .yaml or .yml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "logging level (debug, info, warn, error)")

	cmd.AddCommand(newResolveCmd(a), newGenerateCmd(a), newServeCmd(a))

	return cmd
}

// load reads the config file, then the environment, then flags.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return err
	}

	cfg.ApplyEnv()

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg, a.logger = cfg, logger
	a.logger.Debug("configuration loaded", zap.String("path", a.configPath))

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true

	return zc.Build()
}

func (a *app) httpClient() *http.Client {
	return &http.Client{Timeout: a.cfg.Timeout()}
}

// mediaElement maps the configured media to an element; URLs are fetched
// with client.
func mediaElement(src string, client *http.Client) media.Element {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return media.Remote(src, client)
	}

	return media.File(src)
}
