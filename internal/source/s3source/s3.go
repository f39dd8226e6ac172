// Package s3source reads the input from AWS S3 or an S3-compatible service.
package s3source

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/discochess/sweep/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads a single S3 object.
type Source struct {
	client *s3.Client
	bucket string
	key    string
}

type settings struct {
	region   string
	endpoint string
}

// Option configures a Source.
type Option func(*settings)

// WithRegion sets the AWS region.
func WithRegion(region string) Option {
	return func(s *settings) {
		s.region = region
	}
}

// WithEndpoint sets a custom endpoint (for S3-compatible services like MinIO).
// Path-style addressing is used with a custom endpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) {
		s.endpoint = endpoint
	}
}

// New creates an S3 source for s3://bucket/key.
func New(ctx context.Context, bucket, key string, opts ...Option) (*Source, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.endpoint)
			o.UsePathStyle = true
		}
	})

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

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nsb *types.NoSuchBucket
		if errors.As(err, &nsk) || errors.As(err, &nsb) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, s.String())
		}
		return nil, fmt.Errorf("reading object: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object body: %w", err)
	}
	return data, nil
}

// String returns the s3:// URL of the object.
func (s *Source) String() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Close releases resources.
func (s *Source) Close() error {
	// S3 client doesn't need explicit closing.
	return nil
}
