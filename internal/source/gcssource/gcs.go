// Package gcssource reads the input from Google Cloud Storage.
package gcssource

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/discochess/sweep/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads a single GCS object.
type Source struct {
	client *storage.Client
	bucket string
	key    string
}

type settings struct {
	clientOptions []option.ClientOption
}

// Option configures a Source.
type Option func(*settings)

// WithClientOptions passes options through to storage.NewClient, e.g. to
// select credentials or an emulator endpoint.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(s *settings) {
		s.clientOptions = append(s.clientOptions, opts...)
	}
}

// New creates a GCS source for gs://bucket/key.
func New(ctx context.Context, bucket, key string, opts ...Option) (*Source, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := storage.NewClient(ctx, cfg.clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	return &Source{
		client: client,
		bucket: bucket,
		key:    key,
	}, nil
}

// ReadInput downloads the object.
func (s *Source) ReadInput(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	reader, err := s.client.Bucket(s.bucket).Object(s.key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, s.String())
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object: %w", err)
	}
	return data, nil
}

// String returns the gs:// URL of the object.
func (s *Source) String() string {
	return "gs://" + s.bucket + "/" + s.key
}

// Close releases the client.
func (s *Source) Close() error {
	return s.client.Close()
}
