// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/peaks"
	"github.com/ik5/peaks/dataset"
)

type resolveFlags struct {
	uri       dataset.URI
	format    string
	media     string
	zoomIndex int
}

func newResolveCmd(a *app) *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Fetch or compute waveform data and print a summary",
		Long: `Resolve waveform data exactly once, the way a viewer does on start-up.

The source is picked from --arraybuffer, then --json, then --url (read with
--format), and otherwise computed from --media.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.uri.URL, "url", "", "waveform data URL read with the default format")
	cmd.Flags().StringVar(&f.uri.ArrayBuffer, "arraybuffer", "", "binary waveform data URL")
	cmd.Flags().StringVar(&f.uri.JSON, "json", "", "JSON waveform data URL")
	cmd.Flags().StringVar(&f.format, "format", "", "default format for --url (json or arraybuffer)")
	cmd.Flags().StringVar(&f.media, "media", "", "audio file or URL")
	cmd.Flags().IntVar(&f.zoomIndex, "zoom", 0, "zoom level index to print a view for")

	return cmd
}

func (a *app) resolve(cmd *cobra.Command, f resolveFlags) error {
	uri := a.cfg.DataURI
	if !f.uri.IsZero() {
		uri = f.uri
	}

	format := a.cfg.Format()
	if f.format != "" {
		var err error
		if format, err = dataset.ParseFormat(f.format); err != nil {
			return err
		}
	}

	src := a.cfg.Media
	if f.media != "" {
		src = f.media
	}

	client := a.httpClient()

	opts := peaks.Options{
		Container:            peaks.Viewport{W: 1000, H: 128},
		DataURI:              uri,
		DefaultDataURIFormat: format,
		ZoomLevels:           a.cfg.ZoomLevels,
		HTTPClient:           client,
		Logger:               a.logger,
	}
	if src != "" {
		opts.MediaElement = mediaElement(src, client)
	}

	p, err := peaks.Init(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer p.Destroy()

	res, err := p.Wait(cmd.Context())
	if err != nil {
		return err
	}

	d := res.Dataset
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "source:            %s\n", res.Source)
	if res.ContentType != "" {
		fmt.Fprintf(out, "content type:      %s\n", res.ContentType)
	}
	if res.MediaFormat != "" {
		fmt.Fprintf(out, "media format:      %s\n", res.MediaFormat)
	}
	fmt.Fprintf(out, "sample rate:       %d\n", d.SampleRate)
	fmt.Fprintf(out, "samples per pixel: %d\n", d.SamplesPerPixel)
	fmt.Fprintf(out, "channels:          %d\n", d.Channels)
	fmt.Fprintf(out, "bits:              %d\n", d.Bits)
	fmt.Fprintf(out, "length:            %d\n", d.Length)
	fmt.Fprintf(out, "duration:          %s\n", d.Duration())

	p.Zoom.SetZoom(f.zoomIndex)

	view, err := p.View()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "view:              %d px at %d samples per pixel\n", view.Length, view.SamplesPerPixel)

	return nil
}
