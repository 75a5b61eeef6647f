// Package exporters builds the OpenTelemetry span exporters and metric
// readers selectable from observe.Config.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var (
	// ErrUnknownExporter is returned for an exporter name the factory does not know.
	ErrUnknownExporter = errors.New("exporters: unknown exporter")

	// ErrMissingEndpoint is returned when a network exporter has no endpoint configured.
	ErrMissingEndpoint = errors.New("exporters: endpoint not configured")
)

// Factory creates exporters. The zero value writes stdout exporters to
// os.Stdout and reads endpoints from the process environment.
type Factory struct {
	// Writer receives stdout exporter output.
	Writer io.Writer

	// Getenv looks up endpoint variables.
	Getenv func(string) string
}

func (f Factory) writer() io.Writer {
	if f.Writer == nil {
		return os.Stdout
	}
	return f.Writer
}

func (f Factory) endpoint(keys ...string) string {
	getenv := f.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, k := range keys {
		if v := getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// TracingExporter creates a span exporter.
// Supported names: stdout, otlp, jaeger, none.
func (f Factory) TracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	switch name {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(f.writer()))

	case "otlp":
		if f.endpoint("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") == "" {
			return nil, fmt.Errorf("%w: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", ErrMissingEndpoint)
		}
		return otlptracegrpc.New(ctx)

	case "jaeger":
		// Jaeger ingests OTLP natively.
		if f.endpoint("OTEL_EXPORTER_JAEGER_ENDPOINT") == "" {
			return nil, fmt.Errorf("%w: set OTEL_EXPORTER_JAEGER_ENDPOINT", ErrMissingEndpoint)
		}
		return otlptracegrpc.New(ctx)

	case "none", "":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
}

// MetricsReader creates a metric reader.
// Supported names: stdout, otlp, prometheus, none.
func (f Factory) MetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	switch name {
	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(f.writer()))
		if err != nil {
			return nil, fmt.Errorf("stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "otlp":
		if f.endpoint("OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT") == "" {
			return nil, fmt.Errorf("%w: set OTEL_EXPORTER_OTLP_ENDPOINT or OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", ErrMissingEndpoint)
		}
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("otlp metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "prometheus":
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("prometheus exporter: %w", err)
		}
		return exp, nil

	case "none", "":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, name)
	}
}

// NewTracingExporter creates a span exporter with the zero Factory.
func NewTracingExporter(ctx context.Context, name string) (sdktrace.SpanExporter, error) {
	return Factory{}.TracingExporter(ctx, name)
}

// NewMetricsReader creates a metric reader with the zero Factory.
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	return Factory{}.MetricsReader(ctx, name)
}
