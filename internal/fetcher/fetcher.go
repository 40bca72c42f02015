// Package fetcher downloads remote images into job-owned temporary files.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/sevigo/print-relay/internal/config"
	"github.com/sevigo/print-relay/internal/core"
	"github.com/sevigo/print-relay/internal/util"
)

// Fetcher retrieves images over HTTP(S).
type Fetcher struct {
	client   *http.Client
	tempDir  string
	maxBytes int64
	logger   *slog.Logger
}

// New creates a Fetcher from the fetcher configuration. A nil client gets a
// default client bounded by cfg.Timeout.
func New(cfg *config.FetcherConfig, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = newHTTPClient(cfg.Timeout)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		client:   client,
		tempDir:  cfg.TempDir,
		maxBytes: cfg.MaxBytes,
		logger:   logger,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout,
	}
}

// Fetch downloads sourceURI into a new file under the temp dir. Every failure is
// a fetch-kind JobError, and no partial file is left behind.
func (f *Fetcher) Fetch(ctx context.Context, sourceURI string) (*core.LocalImage, error) {
	u, err := url.Parse(sourceURI)
	if err != nil {
		return nil, core.FetchError("parse uri", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, core.FetchError("parse uri", fmt.Errorf("unsupported scheme %q in %q", u.Scheme, sourceURI))
	}
	if u.Host == "" {
		return nil, core.FetchError("parse uri", fmt.Errorf("missing host in %q", sourceURI))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, core.FetchError("build request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, core.FetchError("download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.FetchError("download", fmt.Errorf("unexpected status %s from %s", resp.Status, u.Redacted()))
	}

	dest := filepath.Join(f.tempDir, util.TempImageName(sourceURI))
	file, err := f.create(dest)
	if err != nil {
		return nil, core.FetchError("create file", err)
	}

	// One byte past the cap tells an oversized body from one exactly at it.
	limit := f.maxBytes
	if limit < math.MaxInt64 {
		limit++
	}
	n, copyErr := io.Copy(file, io.LimitReader(resp.Body, limit))
	closeErr := file.Close()
	switch {
	case copyErr != nil:
		err = core.FetchError("download", copyErr)
	case n > f.maxBytes:
		err = core.FetchError("download", fmt.Errorf("image exceeds %d bytes", f.maxBytes))
	case closeErr != nil:
		err = core.FetchError("write file", closeErr)
	}
	if err != nil {
		if rmErr := os.Remove(dest); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			f.logger.Error("failed to remove partial image", "path", dest, "error", rmErr)
		}
		return nil, err
	}

	f.logger.Debug("image fetched", "uri", u.Redacted(), "path", dest, "bytes", n)
	return &core.LocalImage{Path: dest, SourceURI: sourceURI, Size: n}, nil
}

// create opens dest exclusively. A leftover file with the same name can only
// come from an earlier process that died mid-job, so it is replaced.
func (f *Fetcher) create(dest string) (*os.File, error) {
	if err := os.MkdirAll(f.tempDir, 0o700); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		f.logger.Warn("replacing stale temp image", "path", dest)
		if rmErr := os.Remove(dest); rmErr != nil {
			return nil, rmErr
		}
		file, err = os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	}
	return file, err
}
