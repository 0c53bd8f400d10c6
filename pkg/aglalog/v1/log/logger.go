// Package log defines the public logging interface implemented by the aglalog facade.
package log

import (
	"context"

	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

// Logger exposes one operation per severity level.
//
// Every method returns the failure of the pipeline that handled the call:
// a FormatterExecutionError when the formatter failed, an OutputExecutionError
// when the output function failed. Calls at disabled levels return nil
// without formatting or dispatching anything.
type Logger interface {
	// Fatal logs at FATAL. It does not terminate the process.
	Fatal(msg string, args ...interface{}) error
	// Error logs at ERROR.
	Error(msg string, args ...interface{}) error
	// Warn logs at WARN.
	Warn(msg string, args ...interface{}) error
	// Info logs at INFO.
	Info(msg string, args ...interface{}) error
	// Debug logs at DEBUG.
	Debug(msg string, args ...interface{}) error
	// Trace logs at TRACE.
	Trace(msg string, args ...interface{}) error

	// Log logs at an explicit level. OFF and ALL never produce output.
	Log(lvl level.Level, msg string, args ...interface{}) error
	// LogCtx logs like Log and copies the trace and span ids of the span
	// carried by ctx, if any, into the record.
	LogCtx(ctx context.Context, lvl level.Level, msg string, args ...interface{}) error

	// IsEnabled reports whether records at lvl pass the current threshold.
	IsEnabled(lvl level.Level) bool
}
