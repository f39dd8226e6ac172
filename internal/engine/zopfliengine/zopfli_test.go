package zopfliengine

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/discochess/sweep/internal/engine"
)

func decode(t *testing.T, format engine.Format, data []byte) []byte {
	t.Helper()

	var (
		r   io.ReadCloser
		err error
	)
	switch format {
	case engine.FormatGzip:
		r, err = gzip.NewReader(bytes.NewReader(data))
	case engine.FormatZlib:
		r, err = zlib.NewReader(bytes.NewReader(data))
	case engine.FormatDeflate:
		r = flate.NewReader(bytes.NewReader(data))
	}
	if err != nil {
		t.Fatalf("creating reader: %v", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return out
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(engine.Format(99))
	if !errors.Is(err, engine.ErrUnknownFormat) {
		t.Errorf("New() error = %v, want ErrUnknownFormat", err)
	}
}

func TestEngine_Compress_RoundTrip(t *testing.T) {
	original := bytes.Repeat([]byte("zopfli squeezes harder than gzip -9. "), 50)

	for _, format := range []engine.Format{engine.FormatGzip, engine.FormatZlib, engine.FormatDeflate} {
		t.Run(format.String(), func(t *testing.T) {
			e, err := New(format)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if e.Format() != format {
				t.Errorf("Format() = %v, want %v", e.Format(), format)
			}

			compressed, err := e.Compress(original, 5)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}
			if len(compressed) >= len(original) {
				t.Errorf("Expected compression, got %d bytes from %d bytes", len(compressed), len(original))
			}

			if got := decode(t, format, compressed); !bytes.Equal(got, original) {
				t.Error("Round-trip failed")
			}
		})
	}
}

func TestEngine_Compress_Zeros(t *testing.T) {
	e, err := New(engine.FormatGzip)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	original := make([]byte, 1000)
	compressed, err := e.Compress(original, 100)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if len(compressed) >= len(original) {
		t.Errorf("compressed size = %d, want < %d", len(compressed), len(original))
	}
}

func TestEngine_Compress_ShortInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "one byte", input: []byte("a")},
		{name: "two bytes", input: []byte("ab")},
	}

	for _, format := range []engine.Format{engine.FormatGzip, engine.FormatZlib, engine.FormatDeflate} {
		for _, tt := range tests {
			t.Run(format.String()+"/"+tt.name, func(t *testing.T) {
				e, err := New(format)
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}

				compressed, err := e.Compress(tt.input, 1)
				if err != nil {
					t.Fatalf("Compress() error = %v", err)
				}
				if len(compressed) == 0 {
					t.Fatal("Compress() returned no output")
				}
				if got := decode(t, format, compressed); !bytes.Equal(got, tt.input) {
					t.Errorf("decoded %q, want %q", got, tt.input)
				}
			})
		}
	}
}

func TestEngine_Compress_Deterministic(t *testing.T) {
	e, err := New(engine.FormatGzip)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	original := bytes.Repeat([]byte("abcabcabd"), 200)
	first, err := e.Compress(original, 10)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := e.Compress(original, 10)
		if err != nil {
			t.Fatalf("Compress() error = %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

func TestEngine_Compress_DoesNotModifyInput(t *testing.T) {
	e, err := New(engine.FormatDeflate)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	original := []byte("the input buffer is shared across every run")
	snapshot := bytes.Clone(original)
	if _, err := e.Compress(original, 3); err != nil {
		t.Fatalf("Compress() error = %v", err)
	}
	if !bytes.Equal(original, snapshot) {
		t.Error("Compress() modified its input")
	}
}

func TestEngine_Compress_InvalidIterations(t *testing.T) {
	e, err := New(engine.FormatGzip)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, n := range []uint64{0, math.MaxUint64} {
		if _, err := e.Compress([]byte("x"), n); !errors.Is(err, engine.ErrInvalidIterations) {
			t.Errorf("Compress(%d) error = %v, want ErrInvalidIterations", n, err)
		}
	}
}

func TestOptions(t *testing.T) {
	e, err := New(engine.FormatGzip,
		WithBlockSplitting(false),
		WithBlockSplittingLast(true),
		WithBlockSplittingMax(3),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if e.base.BlockSplitting {
		t.Error("BlockSplitting = true, want false")
	}
	if !e.base.BlockSplittingLast {
		t.Error("BlockSplittingLast = false, want true")
	}
	if e.base.BlockSplittingMax != 3 {
		t.Errorf("BlockSplittingMax = %d, want 3", e.base.BlockSplittingMax)
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(engine.FormatGzip)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if e.base.BlockSplittingMax != DefaultBlockSplittingMax {
		t.Errorf("BlockSplittingMax = %d, want %d", e.base.BlockSplittingMax, DefaultBlockSplittingMax)
	}
}
