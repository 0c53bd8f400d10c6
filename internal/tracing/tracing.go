package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	aglaerrors "github.com/gxo-labs/aglalog/pkg/aglalog/v1/errors"
	"github.com/gxo-labs/aglalog/pkg/aglalog/v1/level"
)

// TracerName names the tracer the CLI starts its spans from.
const TracerName = "github.com/gxo-labs/aglalog"

// RecordAttributes describes a log call as span attributes.
func RecordAttributes(lvl level.Level, msg string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("aglalog.level", lvl.String()),
		attribute.Int("aglalog.level.rank", int(lvl)),
		attribute.String("aglalog.message", msg),
	}
}

// RecordError marks span as failed with err. The aglalog error kind, when
// err carries one, is added as an attribute. Nothing happens for a nil err
// or a span that is not recording.
func RecordError(span oteltrace.Span, err error) {
	if err == nil || span == nil || !span.IsRecording() {
		return
	}
	if kind := aglaerrors.TypeOf(err); kind != "" {
		span.SetAttributes(attribute.String("aglalog.error.type", kind))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
