package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/petasbytes/agent-patterns"

// EventExporter is a span exporter that writes each finished span as a
// "span" event through Emit.
type EventExporter struct{}

var _ sdktrace.SpanExporter = EventExporter{}

func (EventExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		Emit("span", spanFields(s))
	}
	return nil
}

func (EventExporter) Shutdown(context.Context) error { return nil }

func spanFields(s sdktrace.ReadOnlySpan) map[string]any {
	attrs := make(map[string]any, len(s.Attributes()))
	for _, kv := range s.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	f := map[string]any{
		"name":        s.Name(),
		"trace_id":    s.SpanContext().TraceID().String(),
		"span_id":     s.SpanContext().SpanID().String(),
		"duration_ms": s.EndTime().Sub(s.StartTime()).Milliseconds(),
		"status":      s.Status().Code.String(),
		"attributes":  attrs,
	}
	if s.Parent().IsValid() {
		f["parent_span_id"] = s.Parent().SpanID().String()
	}
	if s.Status().Code == codes.Error {
		f["status_message"] = s.Status().Description
	}
	return f
}

// InitTracing installs a global tracer provider backed by EventExporter and
// returns its shutdown function.
func InitTracing() func(context.Context) error {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(EventExporter{}))
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// Tracer returns the package tracer from the global provider. Before
// InitTracing it is a no-op tracer.
func Tracer() trace.Tracer { return otel.Tracer(tracerName) }
