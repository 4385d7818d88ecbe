// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/ik5/peaks/audio"
	"github.com/ik5/peaks/dataset"
	"github.com/ik5/peaks/media"
	"github.com/ik5/peaks/zoom"
)

// Container is the rendering target. It must have a layout.
type Container interface {
	Width() int
	Height() int
}

// Viewport is a fixed-size Container.
type Viewport struct {
	W, H int
}

func (v Viewport) Width() int  { return v.W }
func (v Viewport) Height() int { return v.H }

// Options configure a Peaks instance.
type Options struct {
	Container    Container
	MediaElement media.Element

	DataURI              dataset.URI
	DefaultDataURIFormat dataset.Format

	// ZoomLevels in samples per pixel, strictly increasing; nil or empty means zoom.DefaultLevels.
	ZoomLevels []int

	// Keyboard and Height are carried for the presentation layer.
	Keyboard bool
	Height   int

	HTTPClient   *http.Client
	Capabilities *dataset.Capabilities
	Decoders     *audio.Registry
	Logger       *zap.Logger
}

// Validate reports the first configuration problem, in the order a host
// would usually fix them.
func (o *Options) Validate() error {
	if o.MediaElement == nil {
		return ErrMissingMediaElement
	}

	if !media.IsMedia(o.MediaElement) {
		return fmt.Errorf("%w, got <%s>", ErrInvalidMediaElement, o.MediaElement.Tag())
	}

	if o.Container == nil {
		return ErrMissingContainer
	}

	if o.Container.Width() <= 0 || o.Container.Height() <= 0 {
		return fmt.Errorf("%w, got width %d and height %d",
			ErrContainerLayout, o.Container.Width(), o.Container.Height())
	}

	if o.DefaultDataURIFormat != "" {
		if _, err := dataset.ParseFormat(string(o.DefaultDataURIFormat)); err != nil {
			return fmt.Errorf("%w: defaultDataUriFormat: %w", ErrConfiguration, err)
		}
	}

	if len(o.ZoomLevels) > 0 {
		if err := zoom.ValidateLevels(o.ZoomLevels); err != nil {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	return nil
}
