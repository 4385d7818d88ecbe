// SPDX-License-Identifier: EPL-2.0

// Package media models the playable element a waveform is attached to.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	TagAudio = "audio"
	TagVideo = "video"
)

var (
	ErrNoSource    = errors.New("element has no playable source")
	ErrFetchFailed = errors.New("media fetch failed")
)

// Element is a host element. Only audio and video elements are playable.
type Element interface {
	// Tag is the lower-case element name, e.g. "audio".
	Tag() string
	// Src is the element's media location, if any.
	Src() string
	// Open streams the encoded media.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// IsMedia reports whether el is an audio or video element.
func IsMedia(el Element) bool {
	if el == nil {
		return false
	}

	switch strings.ToLower(el.Tag()) {
	case TagAudio, TagVideo:
		return true
	}

	return false
}

// Generic is an element with no media behind it, such as a div.
type Generic struct {
	TagName string
}

func NewElement(tag string) Generic { return Generic{TagName: tag} }

func (g Generic) Tag() string { return g.TagName }
func (g Generic) Src() string { return "" }

func (g Generic) Open(context.Context) (io.ReadCloser, error) {
	return nil, fmt.Errorf("%w: <%s>", ErrNoSource, g.TagName)
}

// FileElement is an audio element backed by a local file.
type FileElement struct {
	Path string
}

func File(path string) *FileElement { return &FileElement{Path: path} }

func (f *FileElement) Tag() string { return TagAudio }
func (f *FileElement) Src() string { return f.Path }

func (f *FileElement) Open(context.Context) (io.ReadCloser, error) {
	if f.Path == "" {
		return nil, ErrNoSource
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening media: %w", err)
	}

	return file, nil
}

// RemoteElement is an audio element whose source is fetched over HTTP.
type RemoteElement struct {
	URL    string
	Client *http.Client
}

// Remote returns an element for url. A nil client means http.DefaultClient.
func Remote(url string, client *http.Client) *RemoteElement {
	if client == nil {
		client = http.DefaultClient
	}

	return &RemoteElement{URL: url, Client: client}
}

func (r *RemoteElement) Tag() string { return TagAudio }
func (r *RemoteElement) Src() string { return r.URL }

func (r *RemoteElement) Open(ctx context.Context) (io.ReadCloser, error) {
	if r.URL == "" {
		return nil, ErrNoSource
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetchFailed, r.URL, resp.StatusCode)
	}

	return resp.Body, nil
}
