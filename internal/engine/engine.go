// Package engine defines the compression engine driven by a sweep.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIterations indicates an iteration count the engine cannot run.
	ErrInvalidIterations = errors.New("engine: invalid iteration count")

	// ErrUnknownFormat indicates an unrecognised output format name.
	ErrUnknownFormat = errors.New("engine: unknown format")
)

// Format selects the container the engine writes.
type Format int

const (
	// FormatGzip writes a gzip member (RFC 1952).
	FormatGzip Format = iota
	// FormatZlib writes a zlib stream (RFC 1950).
	FormatZlib
	// FormatDeflate writes a raw deflate stream (RFC 1951).
	FormatDeflate
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "gzip", "gz":
		return FormatGzip, nil
	case "zlib":
		return FormatZlib, nil
	case "deflate", "raw":
		return FormatDeflate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatZlib:
		return "zlib"
	case FormatDeflate:
		return "deflate"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the conventional file extension without dot.
func (f Format) Extension() string {
	switch f {
	case FormatGzip:
		return "gz"
	case FormatZlib:
		return "zz"
	case FormatDeflate:
		return "deflate"
	default:
		return ""
	}
}

// Engine compresses a buffer with a given effort.
type Engine interface {
	// Compress returns a newly allocated compressed copy of in, produced with
	// the given number of optimisation iterations. in is never modified.
	Compress(in []byte, iterations uint64) ([]byte, error)

	// Format returns the container format the engine produces.
	Format() Format
}
