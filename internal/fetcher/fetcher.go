package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// defaultMaxBodySize is used when no size limit option is given.
// The bundle is a few hundred kilobytes; 10 MiB leaves ample room.
const defaultMaxBodySize = 10 * 1024 * 1024

// Fetcher performs the two GET requests of a run: the puzzle page and the
// script bundle it references. It holds no per-run state and can be reused.
type Fetcher struct {
	// client performs the requests. Timeout, proxy and headers are
	// configured on it by the netclient package.
	client *http.Client

	// maxBodySize is the largest response body accepted, in bytes.
	maxBodySize int64

	// logger is used for request-level debug logging.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBodySize limits how many bytes of a response body are accepted.
// A larger body fails the request with ErrBodyTooLarge instead of being
// truncated.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithLogger sets the logger.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher using client for all requests.
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		maxBodySize: defaultMaxBodySize,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage downloads the puzzle page HTML.
// Any failure, including a non-2xx status, is returned as a *NetworkError.
func (f *Fetcher) FetchPage(ctx context.Context, baseURL string) (string, error) {
	return f.get(ctx, baseURL)
}

// FetchScript downloads the script bundle source.
// Any failure, including a non-2xx status, is returned as a *NetworkError.
func (f *Fetcher) FetchScript(ctx context.Context, scriptURL string) (string, error) {
	return f.get(ctx, scriptURL)
}

// get performs a single GET and returns the body as text.
// Every failure is reported as a *NetworkError carrying the stack of get.
func (f *Fetcher) get(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", newNetworkError(target, 0, fmt.Errorf("failed to create request: %w", err))
	}

	f.logger.Debug("requesting", "url", target)

	resp, err := f.client.Do(req)
	if err != nil {
		// Transport failure: DNS, connection refused, timeout, proxy.
		return "", newNetworkError(target, 0, err)
	}
	defer resp.Body.Close()

	// Only 2xx counts as success; redirects were already followed by the client.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return "", newNetworkError(target, resp.StatusCode, nil)
	}

	// Read one byte past the limit to tell "exactly at limit" from "too large".
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", newNetworkError(target, 0, fmt.Errorf("failed to read body: %w", err))
	}
	if int64(len(body)) > f.maxBodySize {
		return "", newNetworkError(target, 0, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, f.maxBodySize))
	}

	f.logger.Debug("received",
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	return string(body), nil
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
