// Package zopfliengine adapts the zopfli deflate optimiser to engine.Engine.
package zopfliengine

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/foobaz/go-zopfli/zopfli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/discochess/sweep/internal/engine"
)

// Compile-time check that Engine implements engine.Engine.
var _ engine.Engine = (*Engine)(nil)

// DefaultBlockSplittingMax matches zopfli's own default.
const DefaultBlockSplittingMax = 15

// Engine compresses with zopfli. All fields except the iteration count are
// fixed at construction, so an Engine is safe for concurrent use.
type Engine struct {
	format engine.Format
	base   zopfli.Options
}

// Option configures an Engine.
type Option func(*Engine)

// WithBlockSplitting toggles splitting the input into multiple deflate blocks.
func WithBlockSplitting(enabled bool) Option {
	return func(e *Engine) {
		e.base.BlockSplitting = enabled
	}
}

// WithBlockSplittingLast chooses block boundaries after the LZ77 passes
// instead of before them.
func WithBlockSplittingLast(enabled bool) Option {
	return func(e *Engine) {
		e.base.BlockSplittingLast = enabled
	}
}

// WithBlockSplittingMax caps the number of blocks. Zero means unlimited.
func WithBlockSplittingMax(n int) Option {
	return func(e *Engine) {
		e.base.BlockSplittingMax = n
	}
}

// New returns a zopfli engine producing the given format.
func New(format engine.Format, opts ...Option) (*Engine, error) {
	if _, err := zopfliFormat(format); err != nil {
		return nil, err
	}

	e := &Engine{
		format: format,
		base:   zopfli.DefaultOptions(),
	}
	e.base.BlockSplittingMax = DefaultBlockSplittingMax

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// minZopfliInput is the smallest input zopfli encodes correctly. Shorter
// inputs go through a conventional best-level encoder, which cannot do worse
// on zero or one byte.
const minZopfliInput = 2

// Compress runs zopfli with the given iteration count.
func (e *Engine) Compress(in []byte, iterations uint64) ([]byte, error) {
	if iterations == 0 || iterations > math.MaxInt {
		return nil, fmt.Errorf("%w: %d", engine.ErrInvalidIterations, iterations)
	}

	outputType, err := zopfliFormat(e.format)
	if err != nil {
		return nil, err
	}

	if len(in) < minZopfliInput {
		return e.compressShort(in)
	}

	options := e.base
	options.NumIterations = int(iterations)

	var out bytes.Buffer
	out.Grow(len(in))
	if err := zopfli.Compress(&options, outputType, in, &out); err != nil {
		return nil, fmt.Errorf("zopfli %s: %w", e.format, err)
	}

	return bytes.Clone(out.Bytes()), nil
}

func (e *Engine) compressShort(in []byte) ([]byte, error) {
	var (
		out bytes.Buffer
		w   io.WriteCloser
		err error
	)
	switch e.format {
	case engine.FormatGzip:
		w, err = gzip.NewWriterLevel(&out, gzip.BestCompression)
	case engine.FormatZlib:
		w, err = zlib.NewWriterLevel(&out, zlib.BestCompression)
	case engine.FormatDeflate:
		w, err = flate.NewWriter(&out, flate.BestCompression)
	default:
		err = fmt.Errorf("%w: %v", engine.ErrUnknownFormat, e.format)
	}
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(in); err != nil {
		w.Close()
		return nil, fmt.Errorf("%s short input: %w", e.format, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s short input: %w", e.format, err)
	}
	return out.Bytes(), nil
}

// Format returns the output format.
func (e *Engine) Format() engine.Format {
	return e.format
}

func zopfliFormat(f engine.Format) (int, error) {
	switch f {
	case engine.FormatGzip:
		return zopfli.FORMAT_GZIP, nil
	case engine.FormatZlib:
		return zopfli.FORMAT_ZLIB, nil
	case engine.FormatDeflate:
		return zopfli.FORMAT_DEFLATE, nil
	default:
		return 0, fmt.Errorf("%w: %v", engine.ErrUnknownFormat, f)
	}
}
