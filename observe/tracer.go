package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Tracer opens one span per cascade build.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	StartSpan(ctx context.Context, meta CascadeMeta) (context.Context, trace.Span)
	EndSpan(span trace.Span, err error)
}

type spanTracer struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer. A nil tracer yields spans that
// record nothing.
func NewTracer(t trace.Tracer) Tracer {
	if t == nil {
		t = tracenoop.NewTracerProvider().Tracer("noop")
	}
	return &spanTracer{tracer: t}
}

func (t *spanTracer) StartSpan(ctx context.Context, meta CascadeMeta) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(meta.attributes()...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *spanTracer) EndSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.Bool("cascade.error", true))
	span.SetStatus(codes.Error, err.Error())
}
