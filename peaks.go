// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/peaks/dataset"
	"github.com/ik5/peaks/internal/notify"
	"github.com/ik5/peaks/waveform"
	"github.com/ik5/peaks/zoom"
)

// Peaks ties a resolved waveform dataset to a zoom controller.
type Peaks struct {
	// Zoom is driven by the host (keyboard, UI controls).
	Zoom *zoom.Controller

	opts     Options
	source   dataset.Source
	resolver *dataset.Resolver
	logger   *zap.Logger

	mtx      sync.Mutex
	finished bool
	result   *dataset.Result
	err      error
	ready    notify.List[*dataset.Result]
	failed   notify.List[error]

	cancel context.CancelFunc
	done   chan struct{}
}

// Init validates opts and starts resolving the dataset in the background.
// Configuration errors are returned before any network or file access.
func Init(ctx context.Context, opts Options) (*Peaks, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctrl, err := zoom.New(opts.ZoomLevels)
	if err != nil {
		return nil, err
	}

	format, _ := dataset.ParseFormat(string(opts.DefaultDataURIFormat))

	p := &Peaks{
		Zoom:   ctrl,
		opts:   opts,
		source: opts.DataURI.Source(),
		logger: logger,
		done:   make(chan struct{}),
	}

	p.resolver = dataset.NewResolver(dataset.Options{
		Client:          opts.HTTPClient,
		DefaultFormat:   format,
		Capabilities:    opts.Capabilities,
		Decoders:        opts.Decoders,
		SamplesPerPixel: ctrl.Levels()[0],
		Logger:          logger,
	})

	ctrl.OnChange(func(spp int) {
		logger.Debug("zoom level changed", zap.Int("samples_per_pixel", spp))
	})

	ctx, p.cancel = context.WithCancel(ctx)
	go p.resolve(ctx)

	return p, nil
}

func (p *Peaks) resolve(ctx context.Context) {
	defer close(p.done)

	res, err := p.resolver.Resolve(ctx, p.source, p.opts.MediaElement)

	p.mtx.Lock()
	p.finished = true
	p.result, p.err = res, err
	p.mtx.Unlock()

	if err != nil {
		p.logger.Error("waveform data unavailable", zap.Stringer("source", p.source), zap.Error(err))
		p.failed.Notify(err)
		return
	}

	p.ready.Notify(res)
}

// Source is the data source selected from Options.DataURI.
func (p *Peaks) Source() dataset.Source { return p.source }

// Options returns the options p was created with.
func (p *Peaks) Options() Options { return p.opts }

// OnDatasetReady registers fn for the resolved dataset. If resolution has
// already succeeded fn is called immediately.
func (p *Peaks) OnDatasetReady(fn func(*dataset.Result)) {
	p.mtx.Lock()
	if p.finished {
		res := p.result
		p.mtx.Unlock()
		if res != nil && fn != nil {
			fn(res)
		}
		return
	}
	p.ready.Add(fn)
	p.mtx.Unlock()
}

// OnError registers fn for a failed resolution. If resolution has already
// failed fn is called immediately.
func (p *Peaks) OnError(fn func(error)) {
	p.mtx.Lock()
	if p.finished {
		err := p.err
		p.mtx.Unlock()
		if err != nil && fn != nil {
			fn(err)
		}
		return
	}
	p.failed.Add(fn)
	p.mtx.Unlock()
}

// OnZoomLevelChanged registers fn for zoom changes; it receives the new
// samples-per-pixel value.
func (p *Peaks) OnZoomLevelChanged(fn func(samplesPerPixel int)) {
	p.Zoom.OnChange(fn)
}

// SetZoomLevels replaces the configured zoom levels.
func (p *Peaks) SetZoomLevels(levels []int) error {
	return p.Zoom.SetLevels(levels)
}

// Wait blocks until resolution has finished or ctx is done.
func (p *Peaks) Wait(ctx context.Context) (*dataset.Result, error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.result, p.err
}

// Dataset returns the resolved dataset, or ErrNotReady.
func (p *Peaks) Dataset() (*waveform.Data, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	switch {
	case p.err != nil:
		return nil, p.err
	case p.result == nil:
		return nil, ErrNotReady
	}

	return p.result.Dataset, nil
}

// View returns the dataset at the current zoom level. When the level is
// finer than the data, the dataset is returned at its own resolution.
func (p *Peaks) View() (*waveform.Data, error) {
	d, err := p.Dataset()
	if err != nil {
		return nil, err
	}

	spp := p.Zoom.Zoom()

	view, err := d.Resample(spp)
	if errors.Is(err, waveform.ErrResolutionUnavailable) {
		p.logger.Debug("zoom level finer than waveform data, using nearest",
			zap.Int("requested", spp), zap.Int("available", d.SamplesPerPixel))
		return d, nil
	}

	return view, err
}

// Destroy cancels an in-flight resolution and waits for it to end.
func (p *Peaks) Destroy() {
	p.cancel()
	<-p.done
}
