package observe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestTracer() (Tracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return NewTracer(tp.Tracer("test")), sr
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestCascadeMeta_SpanName(t *testing.T) {
	assert.Equal(t, "seo.cascade.view", CascadeMeta{Variant: "view"}.SpanName())
	assert.Equal(t, "seo.cascade", CascadeMeta{}.SpanName())
}

func TestCascadeMeta_Key(t *testing.T) {
	assert.Equal(t, "query/german", CascadeMeta{Variant: "query", Site: "german"}.Key())
	assert.Equal(t, "query", CascadeMeta{Variant: "query"}.Key())
}

func TestTracer_SpanAttributes(t *testing.T) {
	tracer, sr := newTestTracer()
	meta := CascadeMeta{Variant: "view", Site: "default", Locale: "en-US", Model: "home"}

	_, span := tracer.StartSpan(context.Background(), meta)
	tracer.EndSpan(span, nil)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "seo.cascade.view", s.Name())
	assert.Equal(t, trace.SpanKindInternal, s.SpanKind())

	attrs := attrMap(s.Attributes())
	for k, want := range map[string]string{
		"cascade.variant": "view",
		"cascade.site":    "default",
		"cascade.locale":  "en-US",
		"cascade.model":   "home",
	} {
		assert.Equal(t, want, attrs[k].AsString(), k)
	}
	assert.False(t, attrs["cascade.error"].AsBool())
	assert.Equal(t, codes.Ok, s.Status().Code)
}

func TestTracer_SpanAttributesMinimal(t *testing.T) {
	tracer, sr := newTestTracer()

	_, span := tracer.StartSpan(context.Background(), CascadeMeta{Variant: "query"})
	tracer.EndSpan(span, nil)

	attrs := attrMap(sr.Ended()[0].Attributes())
	for _, k := range []string{"cascade.site", "cascade.locale", "cascade.model"} {
		assert.NotContains(t, attrs, k)
	}
}

func TestTracer_ContextPropagation(t *testing.T) {
	tracer, _ := newTestTracer()

	ctx, span := tracer.StartSpan(context.Background(), CascadeMeta{Variant: "view"})
	defer tracer.EndSpan(span, nil)

	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
}

func TestTracer_ErrorRecording(t *testing.T) {
	tracer, sr := newTestTracer()

	_, span := tracer.StartSpan(context.Background(), CascadeMeta{Variant: "view"})
	tracer.EndSpan(span, errors.New("layer failed"))

	s := sr.Ended()[0]
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "layer failed", s.Status().Description)
	assert.True(t, attrMap(s.Attributes())["cascade.error"].AsBool())
	assert.NotEmpty(t, s.Events(), "the error is recorded as an event")
}

func TestNewTracer_NilIsNoop(t *testing.T) {
	tracer := NewTracer(nil)
	ctx, span := tracer.StartSpan(context.Background(), CascadeMeta{Variant: "view"})
	tracer.EndSpan(span, errors.New("ignored"))

	assert.False(t, trace.SpanContextFromContext(ctx).IsValid())
}
