package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

// Enabled reports whether t writes anything at all.
func Enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }

// Nop discards everything. FromContext returns it when no tracer is set.
var Nop Tracer = nopTracer{}

type ctxKey struct{}

// WithTracer returns a context carrying t.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// Config describes where and how much to trace.
type Config struct {
	Level  Level
	Format Format // FormatAuto picks NDJSON for .ndjson/.jsonl paths, text otherwise
	// Output takes precedence over OutputPath.
	Output io.Writer
	// OutputPath is a file to create; "" and "-" mean stderr.
	OutputPath string
}

// New builds a tracer for cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}

	format := cfg.Format
	if format == FormatAuto {
		switch filepath.Ext(cfg.OutputPath) {
		case ".ndjson", ".jsonl":
			format = FormatNDJSON
		default:
			format = FormatText
		}
	}

	w := cfg.Output
	if w == nil {
		switch cfg.OutputPath {
		case "", "-":
			// stderr is not ours to close
			w = struct{ io.Writer }{os.Stderr}
		default:
			// #nosec G304 -- trace path comes from the command line
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
		}
	}
	return NewStreamTracer(w, cfg.Level, format), nil
}
