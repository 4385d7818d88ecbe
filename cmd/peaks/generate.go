// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/peaks/decode"
	"github.com/ik5/peaks/waveform"
)

type generateFlags struct {
	samplesPerPixel int
	bits            int
	split           bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate <audio> <output.dat|output.json>",
		Short: "Compute waveform data from an audio file",
		Long: `Decode a WAV, AIFF, MP3 or Ogg Vorbis file and write its waveform as
binary (.dat) or JSON (.json) audiowaveform data.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, args[0], args[1], f)
		},
	}

	cmd.Flags().IntVar(&f.samplesPerPixel, "spp", 0, "samples per pixel (default: first zoom level)")
	cmd.Flags().IntVar(&f.bits, "bits", 0, "output resolution, 8 or 16 (default: generate.bits)")
	cmd.Flags().BoolVar(&f.split, "split-channels", false, "keep one waveform per channel")

	return cmd
}

func (a *app) generate(cmd *cobra.Command, in, out string, f generateFlags) error {
	var write func(*waveform.Data, *bufio.Writer) error

	switch strings.ToLower(filepath.Ext(out)) {
	case ".dat":
		write = func(d *waveform.Data, w *bufio.Writer) error { return d.WriteBinary(w) }
	case ".json":
		write = func(d *waveform.Data, w *bufio.Writer) error { return d.WriteJSON(w) }
	default:
		return fmt.Errorf("output %s: extension must be .dat or .json", out)
	}

	opts := waveform.BuildOptions{
		SamplesPerPixel: a.cfg.ZoomLevels[0],
		Bits:            a.cfg.Generate.Bits,
		SplitChannels:   a.cfg.Generate.SplitChannels || f.split,
	}
	if f.samplesPerPixel > 0 {
		opts.SamplesPerPixel = f.samplesPerPixel
	}
	if f.bits > 0 {
		opts.Bits = f.bits
	}

	r, err := os.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()

	src, format, err := decode.Detect(decode.DefaultRegistry(), r)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	defer src.Close()

	d, err := waveform.Build(src, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	w, err := os.Create(out)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := write(d, bw); err != nil {
		w.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	a.logger.Info("waveform written",
		zap.String("input", in),
		zap.String("format", format),
		zap.String("output", out),
		zap.Int("samples_per_pixel", d.SamplesPerPixel),
		zap.Int("length", d.Length))

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d px at %d samples per pixel, %s\n",
		out, d.Length, d.SamplesPerPixel, d.Duration())

	return nil
}
