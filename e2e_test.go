package sweep_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/sweep"
	"github.com/discochess/sweep/internal/codec/gzipcodec"
	"github.com/discochess/sweep/internal/engine"
	"github.com/discochess/sweep/internal/engine/zopfliengine"
	"github.com/discochess/sweep/internal/measure/logsink"
	"github.com/discochess/sweep/internal/source/filesource"
)

func TestE2E_ZeroFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zeros.bin")
	if err := os.WriteFile(path, make([]byte, 1000), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	src, err := filesource.New(path)
	if err != nil {
		t.Fatalf("filesource.New() error = %v", err)
	}
	defer src.Close()

	input, err := src.ReadInput(context.Background())
	if err != nil {
		t.Fatalf("ReadInput() error = %v", err)
	}

	eng, err := zopfliengine.New(engine.FormatGzip)
	if err != nil {
		t.Fatalf("zopfliengine.New() error = %v", err)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	cfg := sweep.Config{MinIterations: 100, MaxIterations: 100, Step: 25, Repetitions: 1, Path: path}
	runner, err := sweep.New(cfg,
		sweep.WithEngine(eng),
		sweep.WithSink(logsink.New(zap.New(core))),
		sweep.WithVerifier(gzipcodec.New()),
	)
	if err != nil {
		t.Fatalf("sweep.New() error = %v", err)
	}

	if err := runner.Run(context.Background(), input); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries := logs.FilterMessage(logsink.Message).All()
	if len(entries) != 1 {
		t.Fatalf("got %d records, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["iterations"] != uint64(100) {
		t.Errorf("iterations = %v, want 100", fields["iterations"])
	}
	if fields["original_size"] != int64(1000) {
		t.Errorf("original_size = %v, want 1000", fields["original_size"])
	}
	compressed, _ := fields["compressed_size"].(int64)
	if compressed <= 0 || compressed >= 1000 {
		t.Errorf("compressed_size = %v, want within (0, 1000)", fields["compressed_size"])
	}
	if saved := fields["saved_space"].(int64); saved+compressed != 1000 {
		t.Errorf("saved_space %d + compressed_size %d != 1000", saved, compressed)
	}
}

func TestE2E_DeterministicSizes(t *testing.T) {
	eng, err := zopfliengine.New(engine.FormatGzip)
	if err != nil {
		t.Fatalf("zopfliengine.New() error = %v", err)
	}

	core, logs := observer.New(zapcore.InfoLevel)
	cfg := sweep.Config{MinIterations: 3, MaxIterations: 3, Step: 1, Repetitions: 3}
	runner, err := sweep.New(cfg,
		sweep.WithEngine(eng),
		sweep.WithSink(logsink.New(zap.New(core))),
	)
	if err != nil {
		t.Fatalf("sweep.New() error = %v", err)
	}

	input := []byte("a fixed input and a fixed iteration count give a fixed output size, " +
		"a fixed input and a fixed iteration count give a fixed output size")
	if err := runner.Run(context.Background(), input); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d records, want 3", len(entries))
	}
	first := entries[0].ContextMap()["compressed_size"]
	for i, e := range entries[1:] {
		if got := e.ContextMap()["compressed_size"]; got != first {
			t.Errorf("repetition %d compressed_size = %v, want %v", i+2, got, first)
		}
	}
}
