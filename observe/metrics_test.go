package observe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*metricsImpl, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := newMetrics(mp.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	found := findMetric(rm, name)
	if found == nil {
		return 0
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	require.True(t, ok, "%s: expected Sum[int64], got %T", name, found.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_BuildCounterIncrements(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordBuild(context.Background(), CascadeMeta{Variant: "view", Site: "default"}, 2*time.Millisecond, nil)

	rm := collect(t, reader)
	assert.EqualValues(t, 1, sumOf(t, rm, "seo.cascade.builds"))
	assert.Zero(t, sumOf(t, rm, "seo.cascade.errors"))
}

func TestMetrics_ErrorCounterOnFailure(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordBuild(context.Background(), CascadeMeta{Variant: "query"}, time.Millisecond, errors.New("boom"))

	assert.EqualValues(t, 1, sumOf(t, collect(t, reader), "seo.cascade.errors"))
}

func TestMetrics_DurationHistogramRecords(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordBuild(context.Background(), CascadeMeta{Variant: "view"}, 1500*time.Microsecond, nil)

	found := findMetric(collect(t, reader), "seo.cascade.build.duration_ms")
	require.NotNil(t, found)
	hist, ok := found.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "got %T", found.Data)
	require.Len(t, hist.DataPoints, 1)
	assert.InDelta(t, 1.5, hist.DataPoints[0].Sum, 1e-9)
}

func TestMetrics_EvaluationLabels(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := CascadeMeta{Variant: "view", Site: "german"}

	m.RecordEvaluation(context.Background(), meta, "title")
	m.RecordEvaluation(context.Background(), meta, "title")
	m.RecordEvaluation(context.Background(), meta, "canonical")

	found := findMetric(collect(t, reader), "seo.cascade.evaluations")
	require.NotNil(t, found)
	sum := found.Data.(metricdata.Sum[int64])

	byKey := map[string]int64{}
	for _, dp := range sum.DataPoints {
		key, _ := dp.Attributes.Value(attribute.Key("cascade.key"))
		site, _ := dp.Attributes.Value(attribute.Key("cascade.site"))
		assert.Equal(t, "german", site.AsString())
		byKey[key.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"title": 2, "canonical": 1}, byKey)
}

func TestMetrics_EmptyLayer(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordEmptyLayer(context.Background(), CascadeMeta{Variant: "query"}, "site")

	found := findMetric(collect(t, reader), "seo.cascade.layer_empty")
	require.NotNil(t, found)
	dp := found.Data.(metricdata.Sum[int64]).DataPoints[0]
	layer, ok := dp.Attributes.Value(attribute.Key("cascade.layer"))
	assert.True(t, ok)
	assert.Equal(t, "site", layer.AsString())
	_, ok = dp.Attributes.Value(attribute.Key("cascade.site"))
	assert.False(t, ok, "site label must be absent when meta has no site")
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m, reader := newTestMetrics(t)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordBuild(context.Background(), CascadeMeta{Variant: "view"}, time.Millisecond, nil)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 50, sumOf(t, collect(t, reader), "seo.cascade.builds"))
}
