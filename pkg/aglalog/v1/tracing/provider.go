package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TracerProvider gives tools access to tracers whose span context ends up in
// records logged through LogCtx.
type TracerProvider interface {
	// GetTracer returns a Tracer instance with the specified name and options.
	GetTracer(name string, opts ...trace.TracerOption) trace.Tracer

	// Shutdown flushes buffered spans. Implementations without an exporter
	// return nil.
	Shutdown(ctx context.Context) error
}
