// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ik5/peaks/audio"
	"github.com/ik5/peaks/decode"
	"github.com/ik5/peaks/media"
	"github.com/ik5/peaks/waveform"
)

// Capabilities lists what the runtime can decode.
type Capabilities struct {
	// Binary allows parsing binary (.dat) waveform data.
	Binary bool
	// LocalDecode allows computing waveform data from the media element.
	LocalDecode bool
}

// AllCapabilities enables everything.
func AllCapabilities() Capabilities {
	return Capabilities{Binary: true, LocalDecode: true}
}

// Options configure a Resolver. The zero value is usable.
type Options struct {
	// Client performs GET requests; nil means http.DefaultClient.
	Client *http.Client
	// DefaultFormat applies to BareURL sources; empty means JSON.
	DefaultFormat Format
	// Capabilities; nil means AllCapabilities.
	Capabilities *Capabilities
	// Decoders for local computation; nil means decode.DefaultRegistry.
	Decoders *audio.Registry
	// SamplesPerPixel for local computation; zero means 512.
	SamplesPerPixel int
	Logger          *zap.Logger
}

// Result is a resolved dataset and where it came from.
type Result struct {
	Dataset *waveform.Data
	Source  Source
	Format  Format
	URL     string
	// ContentType is the server's response type; empty for local computation.
	ContentType string
	// MediaFormat is the detected media container for local computation.
	MediaFormat string
}

// Resolver obtains waveform data from exactly one Source per call. Only one
// Resolve may run at a time.
type Resolver struct {
	client        *http.Client
	defaultFormat Format
	caps          Capabilities
	decoders      *audio.Registry
	spp           int
	logger        *zap.Logger
	inflight      *semaphore.Weighted
}

func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		client:        opts.Client,
		defaultFormat: opts.DefaultFormat,
		caps:          AllCapabilities(),
		decoders:      opts.Decoders,
		spp:           opts.SamplesPerPixel,
		logger:        opts.Logger,
		inflight:      semaphore.NewWeighted(1),
	}

	if r.client == nil {
		r.client = http.DefaultClient
	}
	if r.defaultFormat == "" {
		r.defaultFormat = FormatJSON
	}
	if opts.Capabilities != nil {
		r.caps = *opts.Capabilities
	}
	if r.decoders == nil {
		r.decoders = decode.DefaultRegistry()
	}
	if r.spp <= 0 {
		r.spp = 512
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	return r
}

// DefaultFormat is the hint applied to BareURL sources.
func (r *Resolver) DefaultFormat() Format { return r.defaultFormat }

// Resolve fetches or computes the dataset for src. el is only used for Local
// sources. A nil src is treated as Local. There is no retry.
func (r *Resolver) Resolve(ctx context.Context, src Source, el media.Element) (*Result, error) {
	if !r.inflight.TryAcquire(1) {
		return nil, ErrResolutionInFlight
	}
	defer r.inflight.Release(1)

	if src == nil {
		src = Local{}
	}

	log := r.logger.With(zap.Stringer("source", src))
	log.Debug("resolving waveform data")

	var (
		res *Result
		err error
	)

	switch s := src.(type) {
	case Binary:
		res, err = r.fetch(ctx, s.URL, FormatBinary)
	case JSON:
		res, err = r.fetch(ctx, s.URL, FormatJSON)
	case BareURL:
		res, err = r.fetch(ctx, s.URL, r.defaultFormat)
	case Local:
		res, err = r.compute(ctx, el)
	default:
		err = fmt.Errorf("%w: source %T", ErrUnknownFormat, src)
	}

	if err != nil {
		log.Warn("waveform data resolution failed", zap.Error(err))
		return nil, err
	}

	res.Source = src
	log.Info("waveform data ready",
		zap.String("format", string(res.Format)),
		zap.String("content_type", res.ContentType),
		zap.Int("samples_per_pixel", res.Dataset.SamplesPerPixel),
		zap.Int("length", res.Dataset.Length))

	return res, nil
}

func (r *Resolver) fetch(ctx context.Context, url string, format Format) (*Result, error) {
	var parse func(io.Reader) (*waveform.Data, error)

	switch format {
	case FormatBinary:
		if !r.caps.Binary {
			return nil, fmt.Errorf("%w: binary waveform data", ErrCapabilityUnavailable)
		}
		parse = waveform.ParseBinary
	case FormatJSON:
		parse = waveform.ParseJSON
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	d, err := parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	return &Result{
		Dataset:     d,
		Format:      format,
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func (r *Resolver) compute(ctx context.Context, el media.Element) (*Result, error) {
	if !r.caps.LocalDecode {
		return nil, fmt.Errorf("%w: local audio decoding", ErrCapabilityUnavailable)
	}
	if el == nil {
		return nil, ErrNoMediaElement
	}

	rc, err := el.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, mediaFormat, err := decode.Detect(r.decoders, &ctxReader{ctx: ctx, r: rc})
	if errors.Is(err, decode.ErrUnknownFormat) {
		return nil, fmt.Errorf("%w: no decoder for %s", ErrCapabilityUnavailable, el.Src())
	}
	if err != nil {
		return nil, err
	}
	defer src.Close()

	d, err := waveform.Build(src, waveform.BuildOptions{SamplesPerPixel: r.spp})
	if err != nil {
		return nil, fmt.Errorf("computing waveform for %s: %w", el.Src(), err)
	}

	return &Result{
		Dataset:     d,
		URL:         el.Src(),
		MediaFormat: mediaFormat,
	}, nil
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(p)
}
