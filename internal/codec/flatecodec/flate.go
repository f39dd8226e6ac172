// Package flatecodec provides a raw deflate codec.
package flatecodec

import (
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/discochess/sweep/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements raw deflate compression with no container.
type Codec struct{}

// New returns a new deflate codec.
func New() *Codec {
	return &Codec{}
}

// Reader wraps r to decompress raw deflate data.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

// Writer wraps w to compress data with deflate at best compression.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return flate.NewWriter(w, flate.BestCompression)
}

// Extension returns "deflate".
func (c *Codec) Extension() string {
	return "deflate"
}
