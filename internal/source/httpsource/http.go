// Package httpsource downloads the input over HTTP(S).
package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/discochess/sweep/internal/source"
)

// DefaultResponseHeaderTimeout is the default timeout for receiving response headers.
const DefaultResponseHeaderTimeout = 30 * time.Second

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source downloads a single URL.
type Source struct {
	client *http.Client
	url    string
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// New creates a source for url.
func New(url string, opts ...Option) *Source {
	s := &Source{
		client: &http.Client{
			// No overall timeout; large corpora take as long as they take.
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		url: url,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadInput downloads the body of the URL.
func (s *Source) ReadInput(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, s.url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if resp.ContentLength >= 0 && int64(len(data)) != resp.ContentLength {
		return nil, fmt.Errorf("short body: got %d bytes, want %d", len(data), resp.ContentLength)
	}
	return data, nil
}

// Close releases idle connections.
func (s *Source) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
