// SPDX-License-Identifier: EPL-2.0

// Package zoom tracks the current zoom level of a waveform view.
//
// A Controller owns an ordered list of samples-per-pixel values and an index
// into it. Index 0 is the most zoomed-in (smallest) level. Navigation never
// fails: out-of-range requests are clamped, so hosts can bind keys to ZoomIn
// and ZoomOut without bounds checks.
package zoom

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ik5/peaks/internal/notify"
)

// DefaultLevels are the samples-per-pixel values used when none are configured.
var DefaultLevels = []int{512, 1024, 2048, 4096}

var ErrInvalidLevels = errors.New("zoom levels must be positive and strictly increasing")

// Controller is safe for use from multiple goroutines; change observers run
// on the goroutine that caused the change.
type Controller struct {
	mtx    sync.Mutex
	levels []int
	index  int

	changed notify.List[int]
}

// New returns a controller at index 0. Nil or empty levels select DefaultLevels.
func New(levels []int) (*Controller, error) {
	if len(levels) == 0 {
		levels = DefaultLevels
	}

	if err := ValidateLevels(levels); err != nil {
		return nil, err
	}

	return &Controller{levels: slices.Clone(levels)}, nil
}

// ValidateLevels reports whether levels can drive a Controller.
func ValidateLevels(levels []int) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidLevels)
	}

	for i, l := range levels {
		if l <= 0 {
			return fmt.Errorf("%w: level %d is %d", ErrInvalidLevels, i, l)
		}
		if i > 0 && l <= levels[i-1] {
			return fmt.Errorf("%w: level %d (%d) after %d", ErrInvalidLevels, i, l, levels[i-1])
		}
	}

	return nil
}

// OnChange registers fn to receive the new samples-per-pixel value after
// every effective level change.
func (c *Controller) OnChange(fn func(samplesPerPixel int)) {
	c.changed.Add(fn)
}

// Zoom returns the samples-per-pixel value of the current level.
func (c *Controller) Zoom() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.levels[c.index]
}

// Index returns the current position in Levels.
func (c *Controller) Index() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.index
}

// Levels returns a copy of the configured levels.
func (c *Controller) Levels() []int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return slices.Clone(c.levels)
}

// SetZoom moves to index, clamped into [0, len(Levels)-1]. Observers are
// notified only when the clamped index differs from the current one.
func (c *Controller) SetZoom(index int) {
	c.move(func(int) int { return index })
}

// ZoomIn moves one level towards finer resolution.
func (c *Controller) ZoomIn() {
	c.move(func(i int) int { return i - 1 })
}

// ZoomOut moves one level towards coarser resolution.
func (c *Controller) ZoomOut() {
	c.move(func(i int) int { return i + 1 })
}

// move computes the target from the current index under the lock.
func (c *Controller) move(target func(current int) int) {
	c.mtx.Lock()

	index := max(0, min(target(c.index), len(c.levels)-1))
	if index == c.index {
		c.mtx.Unlock()
		return
	}

	c.index = index
	spp := c.levels[index]
	c.mtx.Unlock()

	c.changed.Notify(spp)
}

// SetLevels replaces the level list. The current index is kept, clamped to
// the new list; observers are notified if the resolved value changes.
func (c *Controller) SetLevels(levels []int) error {
	if err := ValidateLevels(levels); err != nil {
		return err
	}

	c.mtx.Lock()

	before := c.levels[c.index]
	c.levels = slices.Clone(levels)
	c.index = min(c.index, len(c.levels)-1)
	after := c.levels[c.index]

	c.mtx.Unlock()

	if before != after {
		c.changed.Notify(after)
	}

	return nil
}
