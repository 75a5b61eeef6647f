package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cascade resolution metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordBuild records one cascade build with its duration.
	RecordBuild(ctx context.Context, meta CascadeMeta, duration time.Duration, err error)

	// RecordEvaluation records one computed key evaluation.
	RecordEvaluation(ctx context.Context, meta CascadeMeta, key string)

	// RecordEmptyLayer records a layer that degraded to an empty mapping.
	RecordEmptyLayer(ctx context.Context, meta CascadeMeta, layer string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	builds       metric.Int64Counter
	errors       metric.Int64Counter
	evaluations  metric.Int64Counter
	emptyLayers  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance recording on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	builds, err := meter.Int64Counter(
		"seo.cascade.builds",
		metric.WithDescription("Total number of cascade builds"),
		metric.WithUnit("{build}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"seo.cascade.errors",
		metric.WithDescription("Total number of cascade builds that recovered from an error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter(
		"seo.cascade.evaluations",
		metric.WithDescription("Total number of computed key evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, err
	}

	emptyLayers, err := meter.Int64Counter(
		"seo.cascade.layer_empty",
		metric.WithDescription("Total number of cascade layers that resolved empty"),
		metric.WithUnit("{layer}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"seo.cascade.build.duration_ms",
		metric.WithDescription("Cascade build duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		builds:       builds,
		errors:       errorCount,
		evaluations:  evaluations,
		emptyLayers:  emptyLayers,
		durationHist: durationHist,
	}, nil
}

func baseAttrs(meta CascadeMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("cascade.variant", meta.Variant),
	}
	if meta.Site != "" {
		attrs = append(attrs, attribute.String("cascade.site", meta.Site))
	}
	return attrs
}

// RecordBuild records metrics for a cascade build.
func (m *metricsImpl) RecordBuild(ctx context.Context, meta CascadeMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(baseAttrs(meta)...)

	m.builds.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}

	// Sub-millisecond builds are common, keep the fraction
	durationMs := float64(duration.Microseconds()) / 1000
	m.durationHist.Record(ctx, durationMs, opt)
}

// RecordEvaluation records a computed key evaluation.
func (m *metricsImpl) RecordEvaluation(ctx context.Context, meta CascadeMeta, key string) {
	attrs := append(baseAttrs(meta), attribute.String("cascade.key", key))
	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordEmptyLayer records a degraded layer.
func (m *metricsImpl) RecordEmptyLayer(ctx context.Context, meta CascadeMeta, layer string) {
	attrs := append(baseAttrs(meta), attribute.String("cascade.layer", layer))
	m.emptyLayers.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordBuild(context.Context, CascadeMeta, time.Duration, error) {}
func (m *noopMetrics) RecordEvaluation(context.Context, CascadeMeta, string)          {}
func (m *noopMetrics) RecordEmptyLayer(context.Context, CascadeMeta, string)          {}
