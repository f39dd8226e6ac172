// Package filesource reads the input from the local filesystem.
package filesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/discochess/sweep/internal/source"
)

// Compile-time check that Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads a single local file.
type Source struct {
	path string
}

// New creates a source for path. The file must exist and must not be a
// directory.
func New(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return &Source{path: path}, nil
}

// ReadInput reads the whole file.
func (s *Source) ReadInput(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// Close releases any resources held by the source.
func (s *Source) Close() error {
	return nil
}
