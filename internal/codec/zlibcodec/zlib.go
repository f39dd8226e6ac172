// Package zlibcodec provides a zlib compression codec.
package zlibcodec

import (
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/discochess/sweep/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zlib compression.
type Codec struct{}

// New returns a new zlib codec.
func New() *Codec {
	return &Codec{}
}

// Reader wraps r to decompress zlib data.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}

// Writer wraps w to compress data with zlib at best compression.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zlib.NewWriterLevel(w, zlib.BestCompression)
}

// Extension returns "zz".
func (c *Codec) Extension() string {
	return "zz"
}
