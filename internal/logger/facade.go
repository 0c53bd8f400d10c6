// Package logger implements the aglalog facade and the slog logger used by tooling.
package logger

import (
	"context"
	"time"

	"github.com/gxo-labs/aglalog/internal/config"
	"github.com/gxo-labs/aglalog/internal/metrics"
	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	aglalog "github.com/gxo-labs/aglalog/pkg/aglalog/v1/log"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/plugin"
)

// Facade filters, formats and dispatches log calls according to the
// Configuration it is bound to.
type Facade struct {
	cfg     *config.Configuration
	clock   func() time.Time
	metrics *metrics.DispatchMetrics
}

var _ aglalog.Logger = (*Facade)(nil)

// Option configures a Facade at construction.
type Option func(*Facade)

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(clock func() time.Time) Option {
	return func(f *Facade) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// WithMetrics counts dispatched records.
func WithMetrics(m *metrics.DispatchMetrics) Option {
	return func(f *Facade) { f.metrics = m }
}

// New binds a Facade to cfg.
func New(cfg *config.Configuration, opts ...Option) *Facade {
	f := &Facade{cfg: cfg, clock: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Configuration returns the configuration the facade reads on every call.
func (f *Facade) Configuration() *config.Configuration {
	return f.cfg
}

// IsEnabled reports whether records at lvl pass the current threshold.
func (f *Facade) IsEnabled(lvl level.Level) bool {
	return level.IsEnabled(lvl, f.cfg.Threshold())
}

// Log runs the pipeline for one call: threshold check, record, format,
// dispatch. A disabled level returns before anything else happens.
func (f *Facade) Log(lvl level.Level, msg string, args ...interface{}) error {
	return f.dispatch(context.Background(), lvl, msg, args)
}

// LogCtx is Log with the trace and span ids of ctx copied into the record.
func (f *Facade) LogCtx(ctx context.Context, lvl level.Level, msg string, args ...interface{}) error {
	return f.dispatch(ctx, lvl, msg, args)
}

func (f *Facade) dispatch(ctx context.Context, lvl level.Level, msg string, args []interface{}) error {
	// One snapshot per call keeps formatter and output from the same update.
	snap := f.cfg.Snapshot()
	if !level.IsEnabled(lvl, snap.Threshold()) {
		return nil
	}

	record := plugin.Record{
		Level:     lvl,
		Timestamp: f.clock(),
		Message:   msg,
		Args:      args,
	}
	if traceID, spanID, ok := spanIDs(ctx); ok {
		record.TraceID, record.SpanID = traceID, spanID
	}

	rendered, err := snap.Formatter()(record)
	if err != nil {
		f.metrics.Observe(lvl, metrics.OutcomeFormatFailed)
		return aglaerrors.NewFormatterExecutionError(lvl.String(), err)
	}
	if err := snap.LoggerFunction(lvl)(rendered); err != nil {
		f.metrics.Observe(lvl, metrics.OutcomeOutputFailed)
		return aglaerrors.NewOutputExecutionError(lvl.String(), err)
	}
	f.metrics.Observe(lvl, metrics.OutcomeEmitted)
	return nil
}

// Fatal logs at FATAL. It does not exit the process.
func (f *Facade) Fatal(msg string, args ...interface{}) error { return f.Log(level.FATAL, msg, args...) }

// Error logs at ERROR.
func (f *Facade) Error(msg string, args ...interface{}) error { return f.Log(level.ERROR, msg, args...) }

// Warn logs at WARN.
func (f *Facade) Warn(msg string, args ...interface{}) error { return f.Log(level.WARN, msg, args...) }

// Info logs at INFO.
func (f *Facade) Info(msg string, args ...interface{}) error { return f.Log(level.INFO, msg, args...) }

// Debug logs at DEBUG.
func (f *Facade) Debug(msg string, args ...interface{}) error { return f.Log(level.DEBUG, msg, args...) }

// Trace logs at TRACE.
func (f *Facade) Trace(msg string, args ...interface{}) error { return f.Log(level.TRACE, msg, args...) }
