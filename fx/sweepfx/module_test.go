package sweepfx

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/sweep"
	"github.com/discochess/sweep/internal/engine"
	"github.com/discochess/sweep/internal/measure"
	"github.com/discochess/sweep/internal/measure/logsink"
)

func TestModule_ProvidesRunner(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var extra []measure.Record
	var runner *sweep.Runner
	app := fxtest.New(t,
		fx.Supply(Config{
			Sweep:  sweep.Config{MinIterations: 1, MaxIterations: 3, Step: 1, Repetitions: 1},
			Format: engine.FormatZlib,
			Verify: true,
		}),
		fx.Supply(zap.New(core)),
		fx.Provide(fx.Annotate(
			func() measure.Sink {
				return measure.SinkFunc(func(r measure.Record) error {
					extra = append(extra, r)
					return nil
				})
			},
			fx.ResultTags(`group:"sweep.sinks"`),
		)),
		Module,
		fx.Populate(&runner),
	)
	app.RequireStart()
	defer app.RequireStop()

	if err := runner.Run(context.Background(), []byte("fx wired sweep input, fx wired sweep input")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := logs.FilterMessage(logsink.Message).Len(); got != 3 {
		t.Errorf("logged %d records, want 3", got)
	}
	if len(extra) != 3 {
		t.Errorf("extra sink got %d records, want 3", len(extra))
	}
	for _, r := range extra {
		if r.Format != "zlib" {
			t.Errorf("Format = %q, want zlib", r.Format)
		}
	}
}

func TestModule_InvalidConfig(t *testing.T) {
	var runner *sweep.Runner
	app := fx.New(
		fx.NopLogger,
		fx.Supply(Config{Sweep: sweep.Config{MinIterations: 1, MaxIterations: 3, Step: 0, Repetitions: 1}}),
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&runner),
	)

	err := app.Err()
	if err == nil {
		t.Fatal("app.Err() = nil, want configuration error")
	}
	if !strings.Contains(err.Error(), "step must be positive") {
		t.Errorf("app.Err() = %v, want step validation failure", err)
	}
}
