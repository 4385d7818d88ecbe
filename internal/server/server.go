// SPDX-License-Identifier: EPL-2.0

// Package server serves precomputed waveform files with the content types
// waveform clients have always been given: text/plain for binary .dat files
// and application/json for JSON documents.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var contentTypes = map[string]string{
	".dat":  "text/plain",
	".json": "application/json",
}

type handler struct {
	root   fs.FS
	logger *zap.Logger
}

// New returns a handler serving the .dat and .json files under root.
func New(root fs.FS, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &handler{root: root, logger: logger}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	ctype, ok := contentTypes[path.Ext(name)]
	if !ok || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}

	f, err := h.root.Open(name)
	if err != nil {
		h.logger.Debug("waveform file not found", zap.String("name", name), zap.Error(err))
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			h.logger.Error("reading waveform file", zap.String("name", name), zap.Error(err))
			http.Error(w, "read error", http.StatusInternalServerError)
			return
		}
		content = bytes.NewReader(data)
	}

	w.Header().Set("Content-Type", ctype)
	h.logger.Debug("serving waveform file", zap.String("name", name), zap.String("content_type", ctype))
	http.ServeContent(w, r, name, info.ModTime(), content)
}

// Run serves h on addr until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("serving waveform data", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
