// Package obslog is a thin wrapper over go.uber.org/zap giving every
// phase, worker, and guarantee run a structured logger with a consistent
// field vocabulary (phase, worker_id, run_id), per SPEC_FULL.md §4.11.
// This departs from the teacher's own fmt.Fprintf-based CLI logging
// because Grafema's concurrent multi-worker event stream needs leveled,
// field-indexed logs rather than a linear text transcript.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.Logger with the run-scoped fields already bound.
type Logger struct {
	*zap.Logger
}

// New builds a Logger. debug selects zap's development encoder (colorized,
// console-friendly) over the production JSON encoder.
func New(debug bool) *Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		// zap.Config.Build only fails on a malformed config; both branches
		// above are well-formed constants, so this is unreachable in
		// practice. Fall back to a minimal logger rather than panic.
		base = zap.NewNop()
	}
	return &Logger{Logger: base}
}

// Discard builds a Logger that drops everything, for tests that don't
// want log noise but still need a non-nil *Logger.
func Discard() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// WithRun binds run_id to every subsequent log call.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("run_id", runID))}
}

// WithPhase binds phase to every subsequent log call.
func (l *Logger) WithPhase(phase string) *Logger {
	return &Logger{Logger: l.Logger.With(zap.String("phase", phase))}
}

// WithWorker binds worker_id to every subsequent log call.
func (l *Logger) WithWorker(id int) *Logger {
	return &Logger{Logger: l.Logger.With(zap.Int("worker_id", id))}
}
