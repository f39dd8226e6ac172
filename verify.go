package sweep

import (
	"bytes"
	"fmt"
	"io"

	"github.com/discochess/sweep/internal/codec"
)

// verify decodes compressed with c and compares it with original.
func verify(c codec.Codec, compressed, original []byte) error {
	reader, err := c.Reader(bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	defer reader.Close()

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	if !bytes.Equal(decoded, original) {
		return fmt.Errorf("%w: decoded %d bytes, want %d", ErrVerify, len(decoded), len(original))
	}
	return nil
}

// Baseline returns the size c's encoder produces for input. It gives a
// reference point for the sweep's results.
func Baseline(c codec.Codec, input []byte) (int, error) {
	var cw countingWriter
	w, err := c.Writer(&cw)
	if err != nil {
		return 0, fmt.Errorf("creating encoder: %w", err)
	}
	if _, err := w.Write(input); err != nil {
		w.Close()
		return 0, fmt.Errorf("encoding: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("closing encoder: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}
